package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	cfg := Config{}
	flag.IntVar(&cfg.DataQubits, "n", 1, "number of data qubits")
	flag.IntVar(&cfg.AncillaQubits, "na", 1, "number of ancilla qubits")
	flag.IntVar(&cfg.Steps, "T", 8, "number of diffusion steps")
	flag.IntVar(&cfg.Layers, "L", 2, "denoise circuit depth")
	flag.IntVar(&cfg.Ndata, "ndata", 32, "ensemble size")
	flag.Float64Var(&cfg.DiffH, "diffh", 1.0, "diffusion amplitude hyperparameter")
	flag.Uint64Var(&cfg.Seed, "seed", 22, "random seed")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, Prefix: "qddpm"})
	if cfg.DataQubits < 1 || cfg.Steps < 1 || cfg.Ndata < 1 {
		logger.Fatal("n, T and ndata must all be positive")
	}

	m, err := initialModel(cfg)
	if err != nil {
		logger.Fatal("building trajectories", "err", err)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("running program", "err", err)
	}
}
