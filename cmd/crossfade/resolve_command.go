package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crossfade/internal/catalog"
	"crossfade/internal/logging"
	"crossfade/internal/pairing"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var artist string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "resolve <title>",
		Short: "Resolve the track/video pairing for a song",
		Long: `Resolve searches the catalog for both renditions of a song, scores the
candidates against the given title, and prints the winning pairing. This
talks to the catalog directly and is useful for troubleshooting matches
without a running daemon.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			title := strings.TrimSpace(args[0])
			if title == "" {
				return fmt.Errorf("title is required")
			}
			if strings.TrimSpace(artist) == "" {
				return fmt.Errorf("artist is required (use --artist)")
			}

			level := cfg.Logging.Level
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Options{
				Level:       level,
				Format:      "console",
				OutputPaths: []string{"stderr"},
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			client, err := catalog.New(cfg.Catalog.APIToken, cfg.Catalog.BaseURL,
				catalog.WithTimeout(time.Duration(cfg.Catalog.RequestTimeout)*time.Second))
			if err != nil {
				return fmt.Errorf("init catalog client: %w", err)
			}
			engine := pairing.NewEngine(logger, catalog.NewCachedSearcher(client),
				pairing.WithSearchLimit(cfg.Catalog.SearchLimit),
				pairing.WithProbeLimit(cfg.Pairing.ProbeLimit),
				pairing.WithCacheBounds(cfg.Pairing.MaxCachedPairs))

			out := cmd.OutOrStdout()
			resolved := engine.Resolve(cmd.Context(), title, artist)
			if resolved == nil {
				fmt.Fprintf(out, "No pairing found for %s\n", displayTitle(artist)+" - "+displayTitle(title))
				return nil
			}
			fmt.Fprintf(out, "Resolved %s\n", displayTitle(artist)+" - "+displayTitle(title))
			fmt.Fprintf(out, "  Track ID: %d\n", resolved.TrackID)
			fmt.Fprintf(out, "  Video ID: %d\n", resolved.VideoID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Artist name for the song")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show scoring analysis output")
	return cmd
}
