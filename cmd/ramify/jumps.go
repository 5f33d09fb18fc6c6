package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pAdic-Ramification/internal/fieldstore"
)

func newJumpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jumps",
		Short: "compute the jump sets of the ramification filtration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, F, err := buildExtension(cfg)
			if err != nil {
				return err
			}
			lower, err := w.LowerJumps()
			if err != nil {
				return err
			}
			upper, err := w.UpperJumps()
			if err != nil {
				return err
			}
			underRefined, err := w.UnderRefined()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "p = %d, F = %s\n", cfg.Prime, F)
			fmt.Fprintf(out, "weak splitting field: degree %d (e = %d, f = %d)\n",
				w.Degree(), w.RamificationDegree(), w.InertiaDegree())
			fmt.Fprintf(out, "lower jumps: %s\n", formatJumps(lower))
			fmt.Fprintf(out, "upper jumps: %s\n", formatJumps(upper))
			if underRefined {
				fmt.Fprintln(out, "note: approximant refinement budget was exhausted")
			}

			if cfg.Store == "" {
				return nil
			}
			store, err := fieldstore.Open(cfg.Store)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Put(fieldstore.Record{
				P:            cfg.Prime,
				Poly:         F.String(),
				E:            int64(w.RamificationDegree()),
				F:            int64(w.InertiaDegree()),
				Lower:        formatJumps(lower),
				Upper:        formatJumps(upper),
				UnderRefined: underRefined,
			})
		},
	}
}
