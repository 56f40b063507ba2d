package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji/kintai/internal/attendance"
	"github.com/ukaji/kintai/internal/config"
	"github.com/ukaji/kintai/internal/report"
)

func newExcelCommand(cfg config.Config) *cobra.Command {
	var (
		inputFlag  string
		monthFlag  string
		outputFlag string
		rateFlag   string
	)

	cmd := &cobra.Command{
		Use:   "excel",
		Short: "Export one month's attendance to an Excel workbook.",
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

			month, err := resolveMonth(rep, monthFlag)
			if err != nil {
				return err
			}

			out := outputFlag
			if out == "" {
				out = fmt.Sprintf("kintai-%s.xlsx", report.SheetName(month))
			}

			days := rep.DaysIn(month.Year, month.Month)
			if err := report.WriteMonth(out, month, days); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Attendance log file (default: $KINTAI_LOG or stdin)")
	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "Target month as YYYY-MM (default: latest month in the log)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (default: kintai-YYYY-MM.xlsx)")
	cmd.Flags().StringVarP(&rateFlag, "rate", "r", "", "Hourly rate for salary (default: $KINTAI_RATE)")

	return cmd
}
