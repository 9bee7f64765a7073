package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookcat/internal/domain"
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/views"
)

func (a *app) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List, show and delete users",
	}
	cmd.AddCommand(a.newUsersListCmd(), a.newUsersGetCmd(), a.newUsersDeleteCmd())
	return cmd
}

func (a *app) newUsersListCmd() *cobra.Command {
	var (
		page   int
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "Lists users. The backend returns every user at once; --page and --limit slice that list locally.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = a.cfg.UI.PageSize
			}
			svc, err := a.newService(nil)
			if err != nil {
				return err
			}
			users, err := svc.ListUsers(cmd.Context())
			if err != nil {
				return wrapRequestError(err, "error loading users")
			}

			ps := logic.NewPageState(logic.PageStateOptions{PageSize: limit, Window: a.cfg.UI.PageWindow})
			ps.ApplyPageResult(domain.PageMeta{Page: 1, Limit: limit, Total: len(users)})
			ps.GoToPage(page)
			from, to := ps.Bounds(len(users))
			visible := users[from:to]

			out := cmd.OutOrStdout()
			if asJSON {
				meta := domain.PageMeta{Page: ps.Page(), Limit: limit, Total: ps.Total(), TotalPages: ps.TotalPages()}
				return writeJSON(out, jsonPage[domain.User]{Data: visible, Meta: meta})
			}
			if len(visible) == 0 {
				fmt.Fprintln(out, "No users found.")
				return nil
			}
			renderUsers(out, visible)
			renderFooter(out, ps, "user", "users")
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "users per page (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the users as JSON")

	return cmd
}

func (a *app) newUsersGetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
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
			user, err := svc.GetUser(cmd.Context(), id)
			if err != nil {
				return wrapRequestError(err, "error loading user %d", id)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, user)
			}
			renderFields(out, user.Username, [][2]string{
				{"ID", strconv.Itoa(user.ID)},
				{"Email", user.Email},
				{"Name", views.OrNA(user.FullName())},
				{"Active", views.FormatActive(user)},
				{"Created", views.OrNA(user.CreatedAt)},
				{"Updated", views.OrNA(user.UpdatedAt)},
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the user as JSON")
	return cmd
}

func (a *app) newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one user",
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
			if err := svc.DeleteUser(cmd.Context(), id); err != nil {
				return wrapRequestError(err, "error deleting user %d", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
			return nil
		},
	}
}
