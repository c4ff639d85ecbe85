package main

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	qddpm "github.com/the-xiaohuichen/QuantGenMdl"
)

// Config holds the run settings the inspector was launched with.
type Config struct {
	DataQubits    int
	AncillaQubits int
	Steps         int
	Layers        int
	Ndata         int
	DiffH         float64
	Seed          uint64
}

// results holds everything the view needs, precomputed once per seed.
type results struct {
	forward  []*qddpm.Ensemble // diffused data ensemble, indexed by t
	backward []*qddpm.Ensemble // zero-parameter denoise trajectory, indexed by t
	natural  []float64         // NaturalDistance(forward[t], haar)
	wass     []float64         // WassersteinDistance(forward[t], haar)
}

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusScrub focus = iota
	focusSeed
)

// Model represents the TUI application state.
type Model struct {
	cfg       Config
	res       *results
	t         int // step cursor, 0..T
	width     int
	height    int
	focus     focus
	seedInput textinput.Model
	statusMsg string
}

func initialModel(cfg Config) (Model, error) {
	ti := textinput.New()
	ti.Placeholder = "seed"
	ti.CharLimit = 20

	res, err := compute(cfg)
	if err != nil {
		return Model{}, err
	}
	return Model{cfg: cfg, res: res, t: cfg.Steps, seedInput: ti}, nil
}

// compute runs the forward diffusion sweep and a frozen (all-zero
// parameter) backward trajectory for the current seed.
func compute(cfg Config) (*results, error) {
	data := qddpm.NewBasisEnsemble(cfg.DataQubits, cfg.Ndata)
	diffHs := make([]float64, cfg.Steps)
	for i := range diffHs {
		diffHs[i] = cfg.DiffH
	}
	haar := qddpm.HaarSample(cfg.DataQubits, cfg.Ndata, cfg.Seed+1)

	res := &results{
		forward: make([]*qddpm.Ensemble, cfg.Steps+1),
		natural: make([]float64, cfg.Steps+1),
		wass:    make([]float64, cfg.Steps+1),
	}
	for t := 0; t <= cfg.Steps; t++ {
		diffused, err := qddpm.ForwardDiffuse(data, t, diffHs, cfg.Seed)
		if err != nil {
			return nil, err
		}
		res.forward[t] = diffused
		if res.natural[t], err = qddpm.NaturalDistance(diffused, haar); err != nil {
			return nil, err
		}
		if res.wass[t], err = qddpm.WassersteinDistance(diffused, haar); err != nil {
			return nil, err
		}
	}

	pipe := qddpm.NewPipeline(cfg.DataQubits, cfg.AncillaQubits, cfg.Steps, cfg.Layers)
	params := make([][]float64, cfg.Steps)
	for t := range params {
		params[t] = make([]float64, pipe.Circuit.NumParams())
	}
	backward, err := pipe.Trajectory(pipe.HaarInput(cfg.Ndata, cfg.Seed), params, cfg.Seed)
	if err != nil {
		return nil, err
	}
	res.backward = backward
	return res, nil
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusScrub:
			switch key {
			case "q":
				return m, tea.Quit
			case "left", "h":
				if m.t > 0 {
					m.t--
				}
			case "right", "l":
				if m.t < m.cfg.Steps {
					m.t++
				}
			case "home", "0":
				m.t = 0
			case "end":
				m.t = m.cfg.Steps
			case "s":
				m.focus = focusSeed
				m.seedInput.SetValue(strconv.FormatUint(m.cfg.Seed, 10))
				m.seedInput.Focus()
			}

		case focusSeed:
			switch key {
			case "esc":
				m.focus = focusScrub
				m.seedInput.Blur()
			case "enter":
				seed, err := strconv.ParseUint(m.seedInput.Value(), 10, 64)
				if err != nil {
					m.statusMsg = "seed must be a non-negative integer"
					break
				}
				cfg := m.cfg
				cfg.Seed = seed
				res, err := compute(cfg)
				if err != nil {
					m.statusMsg = err.Error()
					break
				}
				m.cfg = cfg
				m.res = res
				m.focus = focusScrub
				m.seedInput.Blur()
			default:
				var cmd tea.Cmd
				m.seedInput, cmd = m.seedInput.Update(msg)
				return m, cmd
			}
		}
	}

	return m, nil
}
