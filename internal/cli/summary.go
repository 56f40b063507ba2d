package cli

import (
	"github.com/spf13/cobra"

	"github.com/ukaji/kintai/internal/attendance"
	"github.com/ukaji/kintai/internal/config"
	"github.com/ukaji/kintai/internal/report"
)

func newSummaryCommand(cfg config.Config) *cobra.Command {
	var (
		inputFlag string
		rateFlag  string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Render the daily and monthly attendance tables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := resolveRate(rateFlag, cfg)
			if err != nil {
				return err
			}

			in, cleanup, err := openInput(cmd, inputFlag, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			rep, err := attendance.Summarize(in, rate)
			if err != nil {
				return err
			}

			printWarnings(cmd, rep.Warnings)
			if err := report.WriteDaily(cmd.OutOrStdout(), rep.Days); err != nil {
				return err
			}
			return report.WriteMonthly(cmd.OutOrStdout(), rep.Months)
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Attendance log file (default: $KINTAI_LOG or stdin)")
	cmd.Flags().StringVarP(&rateFlag, "rate", "r", "", "Hourly rate for salary (default: $KINTAI_RATE)")

	return cmd
}
