package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/locvowork/employee_directory/internal/controller"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/query"
)

// queryFlags are the list parameters shared by list and export.
type queryFlags struct {
	search     string
	department string
	role       string
	firstName  string
	sortBy     string
	sortOrder  string
	page       int
	pageSize   int
}

func (q *queryFlags) bind(cmd *cobra.Command, paging bool) {
	cmd.Flags().StringVar(&q.search, "search", "", "match first name, last name or email")
	cmd.Flags().StringVar(&q.department, "department", "", "department filter (all for none)")
	cmd.Flags().StringVar(&q.role, "role", "", "role filter (all for none)")
	cmd.Flags().StringVar(&q.firstName, "first-name", "", "first name contains")
	cmd.Flags().StringVar(&q.sortBy, "sort-by", "", "sort key (firstName|department)")
	cmd.Flags().StringVar(&q.sortOrder, "sort-order", "asc", "sort order (asc|desc)")
	if paging {
		cmd.Flags().IntVar(&q.page, "page", 1, "page number")
		cmd.Flags().IntVar(&q.pageSize, "page-size", query.DefaultPageSize, "page size (10|25|50|100)")
	}
}

// apply replays the flags as user intents, in the order a person would set them.
func (q *queryFlags) apply(c *controller.Controller) error {
	key, err := query.ParseSortKey(q.sortBy)
	if err != nil {
		return err
	}
	order, err := query.ParseSortOrder(q.sortOrder)
	if err != nil {
		return err
	}

	c.Search(q.search)
	c.Filter(query.Filters{Department: q.department, Role: q.role, FirstName: q.firstName}.Normalize())
	if key != query.SortNone {
		c.Sort(key, order)
	}
	if q.pageSize != 0 {
		if err := c.ChangePageSize(q.pageSize); err != nil {
			return err
		}
	}
	if q.page > 1 {
		c.ChangePage(q.page)
	}
	return nil
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Items         []domain.Employee `json:"items"`
	TotalMatching int               `json:"totalMatching"`
	Page          int               `json:"page"`
	PageSize      int               `json:"pageSize"`
	TotalPages    int               `json:"totalPages"`
	From          int               `json:"from"`
	To            int               `json:"to"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	q := &queryFlags{}
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "Print one page of the directory",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, q, cmd)
		},
	}
	q.bind(cmd, true)
	return cmd
}

func runList(opts *RootOptions, q *queryFlags, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()

	svc, _, err := openDirectory(ctx, opts, formatter)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}

	c := controller.New(svc)
	if err := q.apply(c); err != nil {
		formatter.Error(ErrCodeInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid query", err)
	}

	view := c.View(ctx)
	res := view.Result
	from, to := res.Window()
	out := ListResult{
		Items:         res.Items,
		TotalMatching: res.TotalMatching,
		Page:          res.Page,
		PageSize:      res.PageSize,
		TotalPages:    res.TotalPages,
		From:          from,
		To:            to,
	}
	if out.Items == nil {
		out.Items = []domain.Employee{}
	}

	return formatter.Success(out, func(w io.Writer) {
		if res.Empty() {
			fmt.Fprintln(w, controller.EmptyResultMessage)
			return
		}
		writeTable(w, res.Items)
		fmt.Fprintf(w, "\nShowing %d to %d of %d employees (page %d of %d)\n",
			from, to, res.TotalMatching, res.Page, res.TotalPages)
	})
}

func writeTable(w io.Writer, items []domain.Employee) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tEMAIL\tDEPARTMENT\tROLE")
	for _, e := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.FirstName, e.LastName, e.Email, e.Department, e.Role)
	}
	tw.Flush()
}
