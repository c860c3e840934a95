package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/tui"
)

func newSyncCmd(a *app) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger a backend data sync",
		Long: `Ask the backend to refresh its data. With --wait, poll the job until it
finishes and exit non-zero if it fails or times out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			observer := tui.NewChannelObserver()
			mon := a.newMonitor(observer, a.logger)
			defer mon.Close()

			out := cmd.OutOrStdout()
			if err := mon.Start(cmd.Context()); err != nil {
				return fmt.Errorf("failed to start sync: %w", err)
			}
			if !wait {
				fmt.Fprintln(out, "Sync started")
				return nil
			}

			var last domain.SyncState
			for {
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case state := <-observer.Updates():
					if state.Progress != last.Progress || state.Message != last.Message || state.Phase != last.Phase {
						writeSyncProgress(out, state)
					}
					last = state

					switch state.Phase {
					case domain.PhaseSucceeded:
						return nil
					case domain.PhaseFailed, domain.PhaseTimedOut:
						return state.Err
					}
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the sync to finish")
	return cmd
}

func writeSyncProgress(out io.Writer, state domain.SyncState) {
	fmt.Fprintf(out, "[%3d%%] %-9s %s\n", state.Progress, state.Phase, state.Message)
}
