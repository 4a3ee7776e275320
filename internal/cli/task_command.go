package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/services"
)

func (r *RootCommand) newTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add and query tasks",
	}
	cmd.AddCommand(
		r.newTaskAddCommand(),
		r.newTaskShowCommand(),
		r.newTaskFindCommand(),
		r.newTaskAgendaCommand(),
		r.newTaskCompletedCommand(),
	)
	return cmd
}

func (r *RootCommand) newTaskAddCommand() *cobra.Command {
	var (
		due, start, group string
		effort, priority  int
		personal          bool
		parent            int64
		depends           []int64
	)

	cmd := &cobra.Command{
		Use:   "add LOGIN DESCRIPTION...",
		Short: "Add a task owned by and assigned to a user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := services.TaskRequest{
				Description:     strings.Join(args[1:], " "),
				EstimatedEffort: effort,
				Priority:        priority,
				Personal:        personal,
				ParentTaskID:    parent,
				Dependencies:    depends,
			}

			var err error
			if req.DueDate, err = parseDateArg(due); err != nil {
				return errors.NewInvalidInputError("due", due, err.Error())
			}
			if start != "" {
				if req.ScheduledStart, err = parseDateArg(start); err != nil {
					return errors.NewInvalidInputError("start", start, err.Error())
				}
			}
			if group != "" {
				if len(group) != 1 {
					return errors.NewInvalidInputError("group", group, "must be a single letter")
				}
				req.PriorityGroup = strings.ToUpper(group)[0]
			}

			store, err := r.store()
			if err != nil {
				return err
			}

			owner, err := store.Planner.FindUser(args[0])
			if err != nil {
				return r.handler.Handle("find user", err, store.Users.Errors())
			}

			task, err := store.Planner.AddTask(owner, req)
			if err != nil {
				return r.handler.Handle("add task", err, store.Tasks.Errors())
			}
			fmt.Fprintf(r.out, "Added task %d\n", task.ID())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&due, "due", "+7", "Required delivery date: YYYY-MM-DD, today or +N days")
	flags.StringVar(&start, "start", "", "Scheduled start date (default today)")
	flags.IntVar(&effort, "effort", 0, "Estimated effort in hours")
	flags.StringVar(&group, "group", "", "Priority group letter, A to Z")
	flags.IntVar(&priority, "priority", 0, "Priority within the group")
	flags.BoolVar(&personal, "personal", false, "Mark the task as personal")
	flags.Int64Var(&parent, "parent", 0, "Parent task id")
	flags.Int64SliceVar(&depends, "depends", nil, "Ids of tasks this task depends on")

	return cmd
}

func (r *RootCommand) newTaskShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a task by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.NewInvalidInputError("id", args[0], "must be a task id")
			}

			store, err := r.store()
			if err != nil {
				return err
			}

			task, err := store.Planner.Task(id)
			if err != nil {
				return r.handler.Handle("show task", err, store.Tasks.Errors())
			}
			printTask(r.out, task)
			return nil
		},
	}
}

func (r *RootCommand) newTaskFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find LOGIN DESCRIPTION...",
		Short: "Find a user's task by its exact description",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := r.store()
			if err != nil {
				return err
			}

			owner, err := store.Planner.FindUser(args[0])
			if err != nil {
				return r.handler.Handle("find user", err, store.Users.Errors())
			}

			task, err := store.Planner.FindTask(owner, strings.Join(args[1:], " "))
			if err != nil {
				return r.handler.Handle("find task", err, store.Tasks.Errors())
			}
			printTask(r.out, task)

			parent, err := store.Planner.ParentOf(task)
			if err != nil {
				return r.handler.Handle("find parent task", err, store.Tasks.Errors())
			}
			if parent != nil {
				fmt.Fprintf(r.out, "  Part of:   %s\n", parent.Description())
			}
			return nil
		},
	}
}

func (r *RootCommand) newTaskAgendaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "agenda LOGIN",
		Short: "List the tasks due to start this week and every open task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := r.store()
			if err != nil {
				return err
			}

			agenda, err := store.Planner.Agenda(args[0])
			if err != nil {
				return r.handler.Handle("build agenda", err, store.Planner.Diagnostics())
			}

			fmt.Fprintf(r.out, "Agenda for %s\n\n", fullName(agenda.User))
			if err := printTasks(r.out, "Due to start:", agenda.DueForStart); err != nil {
				return err
			}
			fmt.Fprintln(r.out)
			return printTasks(r.out, "Open:", agenda.Active)
		},
	}
}

func (r *RootCommand) newTaskCompletedCommand() *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "completed LOGIN",
		Short: "List the tasks a user completed since a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDateArg(since)
			if err != nil {
				return errors.NewInvalidInputError("since", since, err.Error())
			}

			store, err := r.store()
			if err != nil {
				return err
			}

			tasks, err := store.Planner.CompletedSince(args[0], from)
			if err != nil {
				return r.handler.Handle("list completed tasks", err, store.Planner.Diagnostics())
			}
			return printTasks(r.out, "Completed since "+domain.FormatDate(from)+":", tasks)
		},
	}
	cmd.Flags().StringVar(&since, "since", "-7", "Earliest completion date: YYYY-MM-DD, today or -N days")

	return cmd
}
