package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (r *RootCommand) newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Register and look up users",
	}

	var middle, email string
	add := &cobra.Command{
		Use:   "add LAST FIRST",
		Short: "Register a user with a login and initial password derived from the name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := r.store()
			if err != nil {
				return err
			}

			user, password, err := store.Planner.RegisterUser(args[0], args[1], middle, email)
			if err != nil {
				return r.handler.Handle("register user", err, store.Users.Errors())
			}

			fmt.Fprintf(r.out, "Registered user %d\n", user.ID())
			fmt.Fprintf(r.out, "Login: %s\nInitial password: %s\n", user.LoginName(), password)
			return nil
		},
	}
	add.Flags().StringVar(&middle, "middle", "", "Middle initial")
	add.Flags().StringVar(&email, "email", "", "Email address")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every registered user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := r.store()
			if err != nil {
				return err
			}

			users, err := store.Planner.Users()
			if err != nil {
				return r.handler.Handle("list users", err, store.Users.Errors())
			}
			return printUsers(r.out, users)
		},
	}

	show := &cobra.Command{
		Use:   "show LOGIN",
		Short: "Show one user and their schedule preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := r.store()
			if err != nil {
				return err
			}

			user, err := store.Planner.FindUser(args[0])
			if err != nil {
				return r.handler.Handle("find user", err, store.Users.Errors())
			}
			printUser(r.out, user)
			return nil
		},
	}

	cmd.AddCommand(add, list, show)
	return cmd
}

func (r *RootCommand) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login LOGIN PASSWORD",
		Short: "Check a login name and password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := r.store()
			if err != nil {
				return err
			}

			user, err := store.Planner.Login(args[0], args[1])
			if err != nil {
				return r.handler.Handle("log in", err, store.Users.Errors())
			}
			fmt.Fprintf(r.out, "Welcome %s %s\n", user.FirstName(), user.LastName())
			return nil
		},
	}
}
