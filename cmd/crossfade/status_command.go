package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and cache occupancy",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			status, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			runningKind := statusError
			runningMsg := "stopped"
			if status.Running {
				runningKind = statusOK
				runningMsg = "session " + status.SessionID
			}
			fmt.Fprintln(out, renderStatusLine("Daemon", runningKind, runningMsg, colorize))
			fmt.Fprintln(out, renderStatusLine("Pairings", statusInfo, strconv.Itoa(status.Pairings), colorize))
			fmt.Fprintln(out, renderStatusLine("Negative entries", statusInfo, strconv.Itoa(status.Negatives), colorize))
			fmt.Fprintln(out, renderStatusLine("Pending seeks", statusInfo, strconv.Itoa(status.PendingSeeks), colorize))
			fmt.Fprintln(out, renderStatusLine("In flight", statusInfo, strconv.Itoa(status.InFlight), colorize))
			if status.PairDBPath != "" {
				fmt.Fprintln(out, renderStatusLine("Pair store", statusInfo, status.PairDBPath, colorize))
			}
			return nil
		},
	}
}
