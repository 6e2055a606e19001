package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/source"
	"github.com/simp-lee/adminboard/internal/tableview"
)

var (
	flagPage   int
	flagSize   int
	flagSort   string
	flagField  string
	flagQuery  string
	flagAll    bool
	flagAssume bool

	flagFirstName string
	flagLastName  string
	flagNewEmail  string
	flagNewPass   string
	flagPhone     string
	flagBirthDate string
	flagGender    string
	flagRole      string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user records",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE:  runUsersList,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE:  runUsersCreate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete id...",
	Short: "Delete one or more users",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	usersListCmd.Flags().IntVar(&flagPage, "page", 1, "page number")
	usersListCmd.Flags().IntVar(&flagSize, "page-size", 10, "rows per page")
	usersListCmd.Flags().StringVar(&flagSort, "sort", "", "sort expression, e.g. age or -age")
	usersListCmd.Flags().StringVar(&flagField, "field", "", "search field")
	usersListCmd.Flags().StringVar(&flagQuery, "q", "", "search query")
	usersListCmd.Flags().BoolVar(&flagAll, "all", false, "fetch every page and filter locally")

	usersCreateCmd.Flags().StringVar(&flagFirstName, "first-name", "", "first name")
	usersCreateCmd.Flags().StringVar(&flagLastName, "last-name", "", "last name")
	usersCreateCmd.Flags().StringVar(&flagNewEmail, "user-email", "", "email of the new user")
	usersCreateCmd.Flags().StringVar(&flagNewPass, "user-password", "", "password of the new user")
	usersCreateCmd.Flags().StringVar(&flagPhone, "phone", "", "phone number")
	usersCreateCmd.Flags().StringVar(&flagBirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	usersCreateCmd.Flags().StringVar(&flagGender, "gender", "", "gender (male, female, other)")
	usersCreateCmd.Flags().StringVar(&flagRole, "role", "", "role (admin, user)")

	usersDeleteCmd.Flags().BoolVar(&flagAssume, "yes", false, "skip the confirmation prompt")

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersDeleteCmd)
}

func userViewConfig() tableview.Config[domain.User] {
	return tableview.Config[domain.User]{
		Columns: []tableview.Column[domain.User]{
			{Key: "id", Title: "ID", Value: func(u domain.User) string { return strconv.FormatUint(uint64(u.ID), 10) }, Sortable: true},
			{Key: "first_name", Title: "First Name", Value: func(u domain.User) string { return u.FirstName }, Sortable: true},
			{Key: "last_name", Title: "Last Name", Value: func(u domain.User) string { return u.LastName }, Sortable: true},
			{Key: "email", Title: "Email", Value: func(u domain.User) string { return u.Email }},
			{Key: "phone", Title: "Phone", Value: func(u domain.User) string { return u.Phone }},
			{Key: "age", Title: "Age", Value: func(u domain.User) string { return strconv.Itoa(u.Age) }, Sortable: true},
			{Key: "role", Title: "Role", Value: func(u domain.User) string { return u.Role }, Sortable: true},
		},
		ID: func(u domain.User) (string, bool) {
			if u.ID == 0 {
				return "", false
			}
			return strconv.FormatUint(uint64(u.ID), 10), true
		},
		SearchFields:       []string{"first_name", "last_name", "email", "phone"},
		DefaultSearchField: "email",
		NameField:          "first_name",
		FullName:           func(u domain.User) string { return u.FullName() },
	}
}

func runUsersList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newSession(ctx)
	if err != nil {
		return err
	}

	if flagAll {
		users, err := client.FetchAllUsers(ctx)
		if err != nil {
			return err
		}
		view, err := tableview.NewClientView(userViewConfig(), users)
		if err != nil {
			return err
		}
		if err := applyLocalListFlags(view); err != nil {
			return err
		}
		renderView(view)
		return nil
	}

	result, err := client.SearchUsers(ctx, source.ListOptions{
		Page: flagPage, PageSize: flagSize, Sort: flagSort,
		SearchField: flagField, Query: flagQuery,
	})
	if err != nil {
		return err
	}
	view, err := tableview.NewServerView(userViewConfig(), result.Items, tableview.PageInfo{
		Total: result.Total, Page: result.Page,
		PageSize: result.PageSize, TotalPages: result.TotalPages,
	}, nil, nil)
	if err != nil {
		return err
	}
	renderView(view)
	return nil
}

// applyLocalListFlags configures a client-mode view from the list flags.
func applyLocalListFlags[T any](view *tableview.View[T]) error {
	if flagField != "" {
		if err := view.SetSearchField(flagField); err != nil {
			return err
		}
	}
	view.SetQuery(flagQuery)
	if flagSort != "" {
		key, desc := flagSort, false
		if key[0] == '-' {
			key, desc = key[1:], true
		}
		if err := view.SetSort(key, desc); err != nil {
			return err
		}
	}
	if flagSize > 0 {
		if err := view.SetPageSize(flagSize); err != nil {
			return err
		}
	}
	view.SetPage(flagPage)
	return nil
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newSession(ctx)
	if err != nil {
		return err
	}

	user, err := client.CreateUser(ctx, domain.UserInput{
		FirstName: flagFirstName,
		LastName:  flagLastName,
		Email:     flagNewEmail,
		Password:  flagNewPass,
		Phone:     flagPhone,
		BirthDate: flagBirthDate,
		Gender:    flagGender,
		Role:      flagRole,
	})
	if errors.Is(err, source.ErrQueued) {
		pending := client.PendingLocalRecords()
		warnColor.Printf("backend unreachable; record queued locally as #%d (run 'adminctl pending flush' once the backend is back)\n",
			pending[len(pending)-1].LocalID)
		return nil
	}
	if err != nil {
		return err
	}
	okColor.Printf("created user %d (%s)\n", user.ID, user.Email)
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newSession(ctx)
	if err != nil {
		return err
	}

	wanted := make(map[uint]bool, len(args))
	for _, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil || id == 0 {
			return fmt.Errorf("invalid user id %q", arg)
		}
		wanted[uint(id)] = true
	}

	users, err := client.FetchAllUsers(ctx)
	if err != nil {
		return err
	}
	view, err := tableview.NewClientView(userViewConfig(), users)
	if err != nil {
		return err
	}
	selectRowsByID(view, wanted)

	if view.SelectedCount() != len(wanted) {
		return fmt.Errorf("selected %d of %d requested users; unknown ids in the list", view.SelectedCount(), len(wanted))
	}

	confirmFn := func(sel []domain.User) bool {
		if flagAssume {
			return true
		}
		return confirm(fmt.Sprintf("delete %d user(s)", len(sel)))
	}
	err = view.DeleteSelected(confirmFn, func(sel []domain.User) error {
		ids := make([]uint, len(sel))
		for i, u := range sel {
			ids[i] = u.ID
		}
		deleted, err := client.DeleteUsers(ctx, ids)
		if err != nil {
			return err
		}
		okColor.Printf("deleted %d user(s)\n", deleted)
		return nil
	})
	if errors.Is(err, tableview.ErrNotConfirmed) {
		fmt.Println("aborted")
		return nil
	}
	return err
}

// selectRowsByID walks every page of a client-mode view and toggles the rows
// whose id is in wanted.
func selectRowsByID(view *tableview.View[domain.User], wanted map[uint]bool) {
	view.SetPage(1)
	for {
		rows := view.Rows()
		for i, row := range rows {
			if wanted[row.ID] {
				view.ToggleRow(i)
			}
		}
		if !view.CanNext() {
			return
		}
		view.NextPage()
	}
}
