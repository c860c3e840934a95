package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/service"
)

const statsBarWidth = 30

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show item counters and the current sync status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statsSvc := service.NewStatsService(a.client, a.logger)
			syncSvc := service.NewSyncService(a.client, a.logger)

			var (
				stats  domain.StatsSnapshot
				status domain.SyncStatus
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				stats, err = statsSvc.GetStats(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				status, err = syncSvc.SyncStatus(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			writeStats(cmd.OutOrStdout(), stats, status)
			return nil
		},
	}
}

func writeStats(out io.Writer, stats domain.StatsSnapshot, status domain.SyncStatus) {
	fmt.Fprintf(out, "Total       %s\n", humanize.Comma(int64(stats.Total)))
	fmt.Fprintf(out, "New today   %s\n", humanize.Comma(int64(stats.TodayNew)))
	fmt.Fprintf(out, "New 7 days  %s\n", humanize.Comma(int64(stats.WeekNew)))

	if len(stats.TypeDistribution) > 0 {
		names := make([]string, 0, len(stats.TypeDistribution))
		for name := range stats.TypeDistribution {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			ci, cj := stats.TypeDistribution[names[i]], stats.TypeDistribution[names[j]]
			if ci != cj {
				return ci > cj
			}
			return names[i] < names[j]
		})

		fmt.Fprintln(out, "\nBy type")
		peak := stats.TypeDistribution[names[0]]
		for _, name := range names {
			n := stats.TypeDistribution[name]
			fmt.Fprintf(out, "  %-14s %s %s\n", name, textBar(n, peak), humanize.Comma(int64(n)))
		}
	}

	if len(stats.DailyTrend) > 0 {
		peak := 0
		for _, p := range stats.DailyTrend {
			peak = max(peak, p.Count)
		}
		fmt.Fprintln(out, "\nDaily trend")
		for _, p := range stats.DailyTrend {
			fmt.Fprintf(out, "  %-10s %s %d\n", p.Date, textBar(p.Count, peak), p.Count)
		}
	}

	fmt.Fprintln(out)
	if status.Running {
		fmt.Fprintf(out, "Sync: running, %d%%", status.Progress)
	} else {
		fmt.Fprint(out, "Sync: idle")
	}
	if status.Message != "" {
		fmt.Fprintf(out, " (%s)", status.Message)
	}
	fmt.Fprintln(out)
}

func textBar(value, peak int) string {
	if peak <= 0 || value <= 0 {
		return strings.Repeat("·", statsBarWidth)
	}
	filled := max(value*statsBarWidth/peak, 1)
	return strings.Repeat("█", filled) + strings.Repeat("·", statsBarWidth-filled)
}
