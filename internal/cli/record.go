package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukaji/kintai/internal/attendance"
)

// The record commands stamp the current wall-clock time and print a
// single logfmt line on stdout. The log file itself is owned by the
// caller, who appends via shell redirection.

func newStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Record the start of a work session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printEvent(cmd, attendance.NewEvent(attendance.KindStart, time.Now(), ""))
		},
	}
}

func newFinishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "finish [content]",
		Short: "Record the end of the current work session, with an optional note.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var note string
			if len(args) == 1 {
				note = args[0]
			}
			return printEvent(cmd, attendance.NewEvent(attendance.KindFinish, time.Now(), note))
		},
	}
}

func newBreakStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "break-start",
		Short: "Record the start of a break.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printEvent(cmd, attendance.NewEvent(attendance.KindBreakStart, time.Now(), ""))
		},
	}
}

func newBreakEndCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "break-end",
		Short: "Record the end of a break.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printEvent(cmd, attendance.NewEvent(attendance.KindBreakEnd, time.Now(), ""))
		},
	}
}

func printEvent(cmd *cobra.Command, ev attendance.Event) error {
	line, err := attendance.EncodeLine(ev)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}
