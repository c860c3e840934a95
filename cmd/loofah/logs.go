package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/service"
)

func newLogsCmd(a *app) *cobra.Command {
	var (
		grep  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show backend sync history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := service.NewSyncService(a.client, a.logger).ListSyncLogs(cmd.Context())
			if err != nil {
				return err
			}

			logs = filterSyncLogs(logs, grep)
			if limit > 0 && len(logs) > limit {
				logs = logs[:limit]
			}

			out := cmd.OutOrStdout()
			if len(logs) == 0 {
				fmt.Fprintln(out, "No sync logs")
				return nil
			}
			writeSyncLogs(out, logs, time.Now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&grep, "grep", "g", "", "fuzzy filter on type, status and error")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show (0 for all)")
	return cmd
}

// filterSyncLogs keeps the entries whose type, status or error message
// fuzzily contains term. Order is preserved.
func filterSyncLogs(logs []domain.SyncLog, term string) []domain.SyncLog {
	term = strings.TrimSpace(term)
	if term == "" {
		return logs
	}

	haystacks := make([]string, len(logs))
	for i, l := range logs {
		haystacks[i] = strings.Join([]string{l.Type, l.Status, l.ErrorMessage}, " ")
	}

	matched := make([]bool, len(logs))
	for _, r := range fuzzy.RankFindFold(term, haystacks) {
		matched[r.OriginalIndex] = true
	}

	var kept []domain.SyncLog
	for i, l := range logs {
		if matched[i] {
			kept = append(kept, l)
		}
	}
	return kept
}

func writeSyncLogs(out io.Writer, logs []domain.SyncLog, now time.Time) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTYPE\tSTATUS\tNEW\tTOTAL\tDURATION\tERROR\t")
	for _, l := range logs {
		when := l.SyncTime
		if t, ok := l.Time(); ok {
			when = humanize.RelTime(t, now, "ago", "from now")
		}
		status := "ok"
		if !l.Succeeded() {
			status = l.Status
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			when, l.Type, status,
			humanize.Comma(int64(l.NewCount)), humanize.Comma(int64(l.TotalCount)),
			l.Elapsed().Round(100*time.Millisecond), l.ErrorMessage)
	}
	w.Flush()
}
