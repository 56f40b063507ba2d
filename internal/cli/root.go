package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ukaji/kintai/internal/config"
	"github.com/ukaji/kintai/internal/ui"
	"github.com/ukaji/kintai/internal/version"
)

// NewRootCommand creates the top-level Cobra command to host subcommands
// and the status dashboard launcher.
func NewRootCommand(ctx context.Context, cfg config.Config) *cobra.Command {
	var (
		inputFlag string
		rateFlag  string
	)

	cmd := &cobra.Command{
		Use:   "kintai",
		Short: "Record and summarize work attendance from your terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputFlag
			if path == "" {
				path = cfg.LogPath
			}
			if path == "" {
				return errors.New("no attendance log configured: pass --input or set KINTAI_LOG")
			}
			rate, err := resolveRate(rateFlag, cfg)
			if err != nil {
				return err
			}

			m := ui.NewModel(ctx, path, rate)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Attendance log file (default: $KINTAI_LOG)")
	cmd.Flags().StringVarP(&rateFlag, "rate", "r", "", "Hourly rate for salary (default: $KINTAI_RATE)")

	cmd.AddCommand(
		newStartCommand(),
		newFinishCommand(),
		newBreakStartCommand(),
		newBreakEndCommand(),
		newSummaryCommand(cfg),
		newExcelCommand(cfg),
		newVersionCommand(),
	)

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build metadata.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "kintai %s\n", version.Info())
			return nil
		},
	}
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cmd := NewRootCommand(ctx, cfg)
	return cmd.Execute()
}

// Main is a helper used by cmd/kintai/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
