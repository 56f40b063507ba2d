package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ukaji/kintai/internal/attendance"
	"github.com/ukaji/kintai/internal/config"
)

func resolveRate(rateFlag string, cfg config.Config) (decimal.Decimal, error) {
	if rateFlag == "" {
		return cfg.Rate, nil
	}

	rate, err := decimal.NewFromString(rateFlag)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse rate: %w", err)
	}
	return rate, nil
}

// openInput picks the attendance log source: the --input flag, then
// KINTAI_LOG, then stdin. The cleanup func closes the file when one was
// opened and is a no-op otherwise.
func openInput(cmd *cobra.Command, inputFlag string, cfg config.Config) (io.Reader, func(), error) {
	path := inputFlag
	if path == "" {
		path = cfg.LogPath
	}
	if path == "" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func resolveMonth(rep *attendance.Report, monthFlag string) (attendance.MonthlySummary, error) {
	if monthFlag == "" {
		month, ok := rep.LatestMonth()
		if !ok {
			return attendance.MonthlySummary{}, errors.New("attendance log has no completed sessions")
		}
		return month, nil
	}

	parsed, err := time.Parse("2006-01", monthFlag)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("parse month: %w", err)
	}
	month, ok := rep.Month(parsed.Year(), parsed.Month())
	if !ok {
		return attendance.MonthlySummary{}, fmt.Errorf("no attendance recorded in %s", monthFlag)
	}
	return month, nil
}

func printWarnings(cmd *cobra.Command, warnings []error) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", w)
	}
}
