// Command ramify computes ramification invariants of weak p-adic Galois
// extensions: the jump sets of the higher ramification filtration of the
// weak splitting field of a polynomial over Q_p.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"pAdic-Ramification/internal/ramlog"
	"pAdic-Ramification/numfield"
	"pAdic-Ramification/padicfld"
	"pAdic-Ramification/ramify"
)

type config struct {
	Prime               uint64 `yaml:"prime"`
	Polynomial          string `yaml:"polynomial"`
	MinimalRamification int64  `yaml:"minimal_ramification"`
	Store               string `yaml:"store"`
}

var (
	flagConfig  string
	flagStore   string
	flagVerbose bool
	flagPrime   uint64
	flagPoly    string
	flagMinRam  int64
)

func main() {
	root := &cobra.Command{
		Use:           "ramify",
		Short:         "ramification filtrations of weak p-adic Galois extensions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagVerbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				ramlog.SetLogger(logger)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&flagStore, "store", "", "SQLite database for computed jump sets")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	for _, cmd := range []*cobra.Command{newJumpsCmd(), newPlotCmd(), newShowCmd()} {
		cmd.Flags().Uint64VarP(&flagPrime, "prime", "p", 0, "residue characteristic")
		cmd.Flags().StringVarP(&flagPoly, "polynomial", "F", "", "generating polynomial over Q, e.g. \"x^6+6*x^4+6*x^3+18\"")
		cmd.Flags().Int64VarP(&flagMinRam, "minimal-ramification", "m", 1, "tame lower bound on the ramification degree")
		root.AddCommand(cmd)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ramify:", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file (if any) under the command line flags.
func loadConfig() (config, error) {
	cfg := config{MinimalRamification: 1}
	if flagConfig != "" {
		raw, err := os.ReadFile(flagConfig)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", flagConfig, err)
		}
	}
	if flagPrime != 0 {
		cfg.Prime = flagPrime
	}
	if flagPoly != "" {
		cfg.Polynomial = flagPoly
	}
	if flagMinRam != 1 {
		cfg.MinimalRamification = flagMinRam
	}
	if flagStore != "" {
		cfg.Store = flagStore
	}
	if cfg.MinimalRamification == 0 {
		cfg.MinimalRamification = 1
	}
	return cfg, nil
}

// buildExtension assembles the weak Galois extension from the resolved
// configuration.
func buildExtension(cfg config) (*ramify.WeakExtension, numfield.Poly, error) {
	if cfg.Prime == 0 {
		return nil, numfield.Poly{}, fmt.Errorf("a prime is required (--prime or config)")
	}
	if cfg.Polynomial == "" {
		return nil, numfield.Poly{}, fmt.Errorf("a polynomial is required (--polynomial or config)")
	}
	F, err := numfield.ParsePoly(cfg.Polynomial)
	if err != nil {
		return nil, numfield.Poly{}, err
	}
	K, err := padicfld.Qp(cfg.Prime)
	if err != nil {
		return nil, numfield.Poly{}, err
	}
	w, err := ramify.New(K, F, cfg.MinimalRamification)
	if err != nil {
		return nil, numfield.Poly{}, err
	}
	return w, F, nil
}

// formatJumps renders a jump set as "(u, m); (u, m)".
func formatJumps(jumps []ramify.Jump) string {
	parts := make([]string, len(jumps))
	for i, j := range jumps {
		parts[i] = j.String()
	}
	return strings.Join(parts, "; ")
}
