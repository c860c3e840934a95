package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/service"
)

type listOptions struct {
	category string
	page     int
	limit    int
	search   string
	newOnly  bool
	all      bool
	asJSON   bool
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job postings",
		Example: `  loofah list --type intern --search backend
  loofah list --new --all --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "type", "t", "all", "category: all, intern, campus, experienced")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "page size (default ui.page_size)")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "server-side search term")
	cmd.Flags().BoolVar(&opts.newOnly, "new", false, "only items flagged new")
	cmd.Flags().BoolVar(&opts.all, "all", false, "fetch every page")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print raw items as JSON")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, opts listOptions) error {
	category, err := domain.ParseCategory(opts.category)
	if err != nil {
		return err
	}
	limit := opts.limit
	if limit <= 0 {
		limit = a.cfg.UI.PageSize
	}

	q := domain.ListQuery{
		Category: category,
		Page:     opts.page,
		PageSize: limit,
		Search:   opts.search,
		NewOnly:  opts.newOnly,
	}
	svc := service.NewItemService(a.client, a.logger)
	out := cmd.OutOrStdout()

	if opts.all {
		items, err := svc.ListAll(cmd.Context(), q, func(loaded, total int) {
			fmt.Fprintf(cmd.ErrOrStderr(), "\rfetched %s of %s", humanize.Comma(int64(loaded)), humanize.Comma(int64(total)))
		})
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if opts.asJSON {
			return writeJSON(out, items)
		}
		writeItemTable(out, items, time.Now())
		fmt.Fprintf(out, "\n%s items\n", humanize.Comma(int64(len(items))))
		return nil
	}

	result, err := svc.ListItems(cmd.Context(), q)
	if err != nil {
		return err
	}
	if opts.asJSON {
		return writeJSON(out, result)
	}
	if len(result.Items) == 0 {
		fmt.Fprintln(out, "No items found")
		return nil
	}
	writeItemTable(out, result.Items, time.Now())
	fmt.Fprintf(out, "\nPage %d of %d · %s items\n",
		result.Page, result.PageCount(), humanize.Comma(int64(result.Total)))
	return nil
}

func writeItemTable(out io.Writer, items []domain.Item, now time.Time) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tCITY\tPUBLISHED\t")
	for _, it := range items {
		published := ""
		if t, ok := it.PublishedAt(); ok {
			published = humanize.RelTime(t, now, "ago", "from now")
		}
		title := it.Title()
		if it.IsNew() {
			title = "* " + title
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", it.ID, title, it.TypeName(), it.City(), published)
	}
	w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
