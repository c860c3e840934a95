package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mmcdole/loofah/internal/adapter"
	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/service"
)

func newShowCmd(a *app) *cobra.Command {
	var open, asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := service.NewItemService(a.client, a.logger).GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, item); err != nil {
					return err
				}
			} else {
				writeItemDetail(out, item, time.Now())
			}

			if !open {
				return nil
			}
			link := item.URL()
			if link == "" {
				return fmt.Errorf("item %s has no link", item.ID)
			}
			return adapter.NewLauncher(a.cfg.UI.Browser, a.cfg.UI.BrowserArgs, a.logger).Open(link)
		},
	}

	cmd.Flags().BoolVarP(&open, "open", "o", false, "open the posting in a browser")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw item as JSON")
	return cmd
}

func writeItemDetail(out io.Writer, item domain.Item, now time.Time) {
	fmt.Fprintln(out, item.Title())
	if sub := item.Subtitle(); sub != "" {
		fmt.Fprintln(out, sub)
	}
	fmt.Fprintln(out)

	published := ""
	if t, ok := item.PublishedAt(); ok {
		published = t.Format("2006-01-02") + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
	}
	facts := []struct{ label, value string }{
		{"ID", item.ID},
		{"Type", item.TypeName()},
		{"Department", item.Department()},
		{"City", item.City()},
		{"Salary", item.SalaryRange()},
		{"Degree", item.Degree()},
		{"Experience", item.Experience()},
		{"Published", published},
		{"Link", item.URL()},
	}
	for _, f := range facts {
		if f.value != "" {
			fmt.Fprintf(out, "%-11s %s\n", f.label+":", f.value)
		}
	}

	for _, section := range []struct{ title, body string }{
		{"Description", item.Description()},
		{"Requirements", item.Requirement()},
	} {
		if body := strings.TrimSpace(section.body); body != "" {
			fmt.Fprintf(out, "\n%s\n%s\n", section.title, body)
		}
	}
}
