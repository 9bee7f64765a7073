package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookcat/internal/domain"
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/views"
)

func (a *app) newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List, show and delete books",
	}
	cmd.AddCommand(a.newBooksListCmd(), a.newBooksGetCmd(), a.newBooksDeleteCmd())
	return cmd
}

func (a *app) newBooksListCmd() *cobra.Command {
	var (
		page      int
		limit     int
		search    string
		startYear int
		endYear   int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of books",
		Example: `  bookcat books list
  bookcat books list --search tolkien --limit 20
  bookcat books list --start-year 1990 --end-year 1999 --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = a.cfg.UI.PageSize
			}
			if page < 1 {
				return fmt.Errorf("--page must be at least 1, got %d", page)
			}

			ps := logic.NewPageState(logic.PageStateOptions{PageSize: limit, Window: a.cfg.UI.PageWindow})
			filters := logic.FilterState{}
			if cmd.Flags().Changed("search") {
				filters.SearchTerm = &search
			}
			if cmd.Flags().Changed("start-year") {
				filters.StartYear = &startYear
			}
			if cmd.Flags().Changed("end-year") {
				filters.EndYear = &endYear
			}
			ps.SetFilters(filters)

			svc, err := a.newService(nil)
			if err != nil {
				return err
			}
			// Nothing is known about the total yet, so the page is not clamped
			query := logic.ComputeQuery(page, limit, ps.Filters())
			a.logger.Debug().Str("query", query.Encode()).Msg("listing books")

			result, err := svc.ListBooks(cmd.Context(), query)
			if err != nil {
				return wrapRequestError(err, "error loading books")
			}
			meta := logic.SynthesizeMeta(page, limit, len(result.Items))
			if result.Meta != nil {
				meta = *result.Meta
			}
			ps.ApplyPageResult(meta)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, jsonPage[domain.Book]{Data: result.Items, Meta: meta})
			}
			if len(result.Items) == 0 {
				if f := ps.Filters(); !f.IsEmpty() {
					fmt.Fprintf(out, "No books found for %s.\n", f.Describe())
				} else {
					fmt.Fprintln(out, "No books found.")
				}
				return nil
			}
			renderBooks(out, result.Items)
			renderFooter(out, ps, "book", "books")
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "books per page (default from config)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "match title or author")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "earliest publication year")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "latest publication year")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")

	return cmd
}

func (a *app) newBooksGetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.newService(nil)
			if err != nil {
				return err
			}
			book, err := svc.GetBook(cmd.Context(), id)
			if err != nil {
				return wrapRequestError(err, "error loading book %d", id)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, book)
			}
			userID := "N/A"
			if book.UserID != nil {
				userID = strconv.Itoa(*book.UserID)
			}
			renderFields(out, book.Title, [][2]string{
				{"ID", strconv.Itoa(book.ID)},
				{"Author", book.Author},
				{"Published", views.FormatYear(book.PublicationYear)},
				{"ISBN", views.OrNA(book.ISBN)},
				{"Added by", userID},
				{"Created", views.OrNA(book.CreatedAt)},
				{"Updated", views.OrNA(book.UpdatedAt)},
				{"Description", views.OrNA(book.Description)},
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the book as JSON")
	return cmd
}

func (a *app) newBooksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.newService(nil)
			if err != nil {
				return err
			}
			if err := svc.DeleteBook(cmd.Context(), id); err != nil {
				return wrapRequestError(err, "error deleting book %d", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted book %d\n", id)
			return nil
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be a positive number", arg)
	}
	return id, nil
}
