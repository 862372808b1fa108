// Command rbufrdump is a human entry point over the core decoder: decode
// a BUFR file to text, or build a catalog archive from a source CSV.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rbufrdump",
		Short: "Decode BUFR messages and build catalog archives",
	}

	root.AddCommand(newDecodeCmd())
	root.AddCommand(newBuildTableCmd())
	return root
}
