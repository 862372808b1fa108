package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sleptworld/rbufr/catalog"
	"github.com/sleptworld/rbufr/ingest/csv"
	"github.com/sleptworld/rbufr/tabentry"
)

func newBuildTableCmd() *cobra.Command {
	var kind string
	var family string

	cmd := &cobra.Command{
		Use:   "build-table <csv> <out>",
		Short: "Build a catalog archive from a WMO or Météo-France source CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, out := args[0], args[1]

			switch strings.ToLower(kind) {
			case "b":
				entries, err := loadBEntries(family, src)
				if err != nil {
					return err
				}
				if err := catalog.BuildB(out, entries); err != nil {
					return fmt.Errorf("building Table B archive: %w", err)
				}
			case "d":
				entries, err := loadDEntries(family, src)
				if err != nil {
					return err
				}
				if err := catalog.BuildD(out, entries); err != nil {
					return fmt.Errorf("building Table D archive: %w", err)
				}
			default:
				return fmt.Errorf("unknown --kind %q: want \"b\" or \"d\"", kind)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "table kind: b or d (required)")
	cmd.Flags().StringVar(&family, "family", "wmo", "source CSV family: wmo or fr")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func loadBEntries(family, path string) ([]tabentry.BEntry, error) {
	switch strings.ToLower(family) {
	case "wmo":
		return csv.LoadWMOBTable(path)
	case "fr":
		return csv.LoadFRBTable(path)
	default:
		return nil, fmt.Errorf("unknown --family %q: want \"wmo\" or \"fr\"", family)
	}
}

func loadDEntries(family, path string) ([]tabentry.DEntry, error) {
	switch strings.ToLower(family) {
	case "wmo":
		return csv.LoadWMOTableD(path)
	case "fr":
		return csv.LoadFRTableD(path)
	default:
		return nil, fmt.Errorf("unknown --family %q: want \"wmo\" or \"fr\"", family)
	}
}
