// Package commands implements the hostbind CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the hostbind root command with all subcommands
// attached.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostbind",
		Short: "Inspect hostbind registry snapshots",
		Long: `hostbind is tooling for the hostbind registration library.

Programs using hostbind can write a snapshot of everything they registered
with their host runtime (classes, properties, signals, RPC declarations).
This tool browses those snapshots from the command line or serves them over
HTTP for editors and other integrations.`,
	}

	cmd.AddCommand(NewIntrospectCommand())
	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(newVersionCommand(version))

	return cmd
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hostbind version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("hostbind %s\n", version)
		},
	}
}
