package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crossfade/internal/pairstore"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage persisted pairings",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persisted pairings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.PairStore.Enabled {
				fmt.Fprintln(out, "Pair store is disabled in configuration")
				return nil
			}
			store, err := pairstore.Open(cfg.PairStore.Path)
			if err != nil {
				return fmt.Errorf("open pair store: %w", err)
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No persisted pairings")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					strconv.FormatInt(record.TrackID, 10),
					strconv.FormatInt(record.VideoID, 10),
					displayTitle(record.Artist),
					displayTitle(record.Title),
					record.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Track", "Video", "Artist", "Title", "Resolved"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of pairings to show (0 for all)")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached and persisted pairings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			client, err := ctx.client()
			if err != nil {
				return err
			}
			result, err := client.ClearCache(cmd.Context())
			if err == nil {
				fmt.Fprintf(out, "Cleared daemon caches (%d persisted pairings removed)\n", result.RemovedStored)
				return nil
			}

			// No daemon reachable, fall back to clearing the store directly.
			cfg, cfgErr := ctx.ensureConfig()
			if cfgErr != nil {
				return cfgErr
			}
			if !cfg.PairStore.Enabled {
				return err
			}
			store, openErr := pairstore.Open(cfg.PairStore.Path)
			if openErr != nil {
				return fmt.Errorf("open pair store: %w", openErr)
			}
			defer store.Close()
			removed, clearErr := store.Clear(cmd.Context())
			if clearErr != nil {
				return clearErr
			}
			fmt.Fprintf(out, "Daemon unreachable; cleared %d persisted pairings directly\n", removed)
			return nil
		},
	}
}
