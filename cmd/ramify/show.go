package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pAdic-Ramification/internal/fieldstore"
	"pAdic-Ramification/numfield"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "list stored jump sets for a prime",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store == "" {
				return fmt.Errorf("a store is required (--store or config)")
			}
			if cfg.Prime == 0 {
				return fmt.Errorf("a prime is required (--prime or config)")
			}
			store, err := fieldstore.Open(cfg.Store)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if cfg.Polynomial != "" {
				F, err := numfield.ParsePoly(cfg.Polynomial)
				if err != nil {
					return err
				}
				r, ok, err := store.Get(cfg.Prime, F.String())
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no stored result for p = %d, F = %s", cfg.Prime, F)
				}
				printRecord(out, r)
				return nil
			}
			records, err := store.List(cfg.Prime)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(out, "no stored results for p = %d\n", cfg.Prime)
				return nil
			}
			for _, r := range records {
				printRecord(out, r)
			}
			return nil
		},
	}
}

func printRecord(out io.Writer, r fieldstore.Record) {
	fmt.Fprintf(out, "p = %d, F = %s (e = %d, f = %d)\n", r.P, r.Poly, r.E, r.F)
	fmt.Fprintf(out, "  lower: %s\n", r.Lower)
	fmt.Fprintf(out, "  upper: %s\n", r.Upper)
	if r.UnderRefined {
		fmt.Fprintln(out, "  note: refinement budget was exhausted")
	}
}
