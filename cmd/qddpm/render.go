package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	qddpm "github.com/the-xiaohuichen/QuantGenMdl"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// renderBar draws a probability in [0,1] as a filled bar of width barW.
func renderBar(p float64) string {
	filled := int(p*float64(barW) + 0.5)
	if filled > barW {
		filled = barW
	}
	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barW-filled))
}

// renderEnsemble draws one panel: per-qubit |1> probabilities averaged
// over the ensemble.
func renderEnsemble(title string, e *qddpm.Ensemble) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	for q, pr := range e.QubitProbabilities() {
		label := fmt.Sprintf("q[%d]", q)
		sb.WriteString(qubitLabelStyle.Render(padRight(label, labelW)))
		sb.WriteString(renderBar(pr.Prob1))
		sb.WriteString(fmt.Sprintf("  P₁=%.3f", pr.Prob1))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderSparkline draws the sweep of values with the current step marked.
func renderSparkline(label string, vals []float64, cur int) string {
	blocks := []rune("▁▂▃▄▅▆▇█")
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span < 1e-12 {
		span = 1
	}
	var sb strings.Builder
	sb.WriteString(padRight(label, 10))
	for t, v := range vals {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		ch := string(blocks[idx])
		if t == cur {
			sb.WriteString(markStyle.Render(ch))
		} else {
			sb.WriteString(barStyle.Render(ch))
		}
	}
	sb.WriteString(fmt.Sprintf("  %.4f", vals[cur]))
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// ──────────────────────────── View ────────────────────────────

func (m Model) View() string {
	header := titleStyle.Render("QDDPM trajectory inspector") +
		dimStyle.Render(fmt.Sprintf("  n=%d na=%d T=%d L=%d N=%d seed=%d",
			m.cfg.DataQubits, m.cfg.AncillaQubits, m.cfg.Steps, m.cfg.Layers,
			m.cfg.Ndata, m.cfg.Seed))

	step := fmt.Sprintf("step t = %d / %d", m.t, m.cfg.Steps)

	fwd := forwardStyle.Render(renderEnsemble("Forward (diffused data @ t)", m.res.forward[m.t]))
	bwd := backwardStyle.Render(renderEnsemble("Backward (denoised Haar @ t)", m.res.backward[m.t]))
	panels := lipgloss.JoinHorizontal(lipgloss.Top, fwd, bwd)

	dist := distanceStyle.Render(
		titleStyle.Render("Distance to Haar ensemble") + "\n" +
			renderSparkline("natural", m.res.natural, m.t) + "\n" +
			renderSparkline("wass", m.res.wass, m.t))

	controls := dimStyle.Render("←/→ step  0/end jump  s seed  q quit")
	if m.focus == focusSeed {
		controls = "new seed: " + m.seedInput.View() + dimStyle.Render("  ⏎ Ok  Esc ✕")
	}
	if m.statusMsg != "" {
		controls += "\n" + statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, step, panels, dist, controls)
}
