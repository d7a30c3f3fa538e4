package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hostbind/hostbind/internal/cli/config"
	"github.com/hostbind/hostbind/runtime/registry"
)

var (
	// Global flags for introspect commands
	snapshotPath string
	outputFormat string
	noColor      bool
)

// NewIntrospectCommand creates the introspect command group
func NewIntrospectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Browse a registry snapshot",
		Long: `Browse a registry snapshot.

Reads the snapshot written by registry.WriteSnapshot and shows the classes,
properties, signals, and RPC declarations a program registered with its
host runtime.`,
		Example: `  # List all registered classes
  hostbind introspect classes

  # Show one class with all of its members
  hostbind introspect class Player

  # JSON output for tooling
  hostbind introspect classes --format json`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if snapshotPath == "" {
				snapshotPath = cfg.Snapshot.Path
			}
			if outputFormat == "" {
				outputFormat = cfg.Output.Format
			}
			if noColor || cfg.Output.NoColor {
				color.NoColor = true
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Path to the registry snapshot (default from hostbind.yml)")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format: json or table")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newIntrospectClassesCommand())
	cmd.AddCommand(newIntrospectClassCommand())

	return cmd
}

func newIntrospectClassesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List all registered classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), snap.Classes)
			}

			header := color.New(color.Bold)
			header.Fprintf(cmd.OutOrStdout(), "%-30s %-6s %-6s %-8s %-6s\n", "CLASS", "TOOL", "PROPS", "SIGNALS", "RPCS")
			for _, cls := range snap.Classes {
				tool := ""
				if cls.Tool {
					tool = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-6s %-6d %-8d %-6d\n",
					cls.Name, tool, len(cls.Properties), len(cls.Signals), len(cls.RPCs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d classes\n", len(snap.Classes))
			return nil
		},
	}
}

func newIntrospectClassCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "class <name>",
		Short: "Show one class with all of its registered members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}

			cls, ok := snap.Class(args[0])
			if !ok {
				return fmt.Errorf("class not found: %s", args[0])
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), cls)
			}

			out := cmd.OutOrStdout()
			title := color.New(color.Bold, color.FgCyan)
			section := color.New(color.Bold)

			title.Fprintln(out, cls.Name)
			if cls.Tool {
				fmt.Fprintln(out, "  tool class")
			}
			if cls.Icon != "" {
				fmt.Fprintf(out, "  icon: %s\n", cls.Icon)
			}

			if len(cls.Properties) > 0 {
				section.Fprintln(out, "Properties:")
				for _, p := range cls.Properties {
					fmt.Fprintf(out, "  %-24s %s", p.Name, p.Descriptor.Type)
					if p.Descriptor.HintString != "" {
						fmt.Fprintf(out, " (%s)", p.Descriptor.HintString)
					}
					fmt.Fprintln(out)
				}
			}
			if len(cls.Signals) > 0 {
				section.Fprintln(out, "Signals:")
				for _, s := range cls.Signals {
					fmt.Fprintf(out, "  %s\n", s.Name)
				}
			}
			if len(cls.RPCs) > 0 {
				section.Fprintln(out, "RPCs:")
				for _, r := range cls.RPCs {
					fmt.Fprintf(out, "  %-24s mode=%s transfer=%s channel=%d call_local=%t\n",
						r.Method, r.Config.Mode, r.Config.TransferMode,
						r.Config.TransferChannel, r.Config.CallLocal)
				}
			}
			return nil
		},
	}
}

func loadSnapshot(path string) (*registry.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return registry.ReadSnapshot(f)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
