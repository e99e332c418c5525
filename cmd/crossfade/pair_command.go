package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crossfade/internal/daemonctl"
)

func newPairCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pair <media-id>",
		Short: "Look up the pairing containing a media id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid media id %q", args[0])
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			pairing, err := client.PairingByID(cmd.Context(), id)
			if errors.Is(err, daemonctl.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No pairing contains media id %d\n", id)
				return nil
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Track ID: %d\n", pairing.TrackID)
			fmt.Fprintf(out, "Video ID: %d\n", pairing.VideoID)
			return nil
		},
	}
}
