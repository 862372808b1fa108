package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sleptworld/rbufr/decoder"
	"github.com/sleptworld/rbufr/ingest"
	"github.com/sleptworld/rbufr/ingest/config"
)

func newDecodeCmd() *cobra.Command {
	var configPath string
	var tablesPath string

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode every BUFR message in a file and print its records as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tablesDir := tablesPath
			if tablesDir == "" && configPath != "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				tablesDir = cfg.ResolveTablesPath()
			}
			if tablesDir == "" {
				tablesDir = (config.Config{}).ResolveTablesPath()
			}

			file, err := ingest.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			for i := 0; i < file.Count(); i++ {
				msg := file.At(i)

				dec, err := decoder.FromMessage(msg, tablesDir)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "message %d: failed to resolve tables: %v\n", i, err)
					continue
				}

				parsed, err := dec.Decode(msg)
				dec.Close()
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "message %d: failed to decode: %v\n", i, err)
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "--- message %d ---\n%s\n", i, parsed.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file (tables_path, defaults)")
	cmd.Flags().StringVar(&tablesPath, "tables-path", "", "override the catalog base directory")
	return cmd
}
