package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"task-planner/internal/domain"
)

func printUser(w io.Writer, user *domain.User) {
	prefs := user.Preferences()
	fmt.Fprintf(w, "User %d: %s, %s %s\n", user.ID(), user.LastName(), user.FirstName(), user.MiddleInitial())
	fmt.Fprintf(w, "  Login:    %s\n", user.LoginName())
	fmt.Fprintf(w, "  Email:    %s\n", user.Email())
	fmt.Fprintf(w, "  Day:      %s - %s\n", prefs.StartTime, prefs.EndTime)
	fmt.Fprintf(w, "  Priority: in schedule %s, minor %s, letters %s, dot %s\n",
		yesNo(prefs.IncludePriorityInSchedule),
		yesNo(prefs.IncludeMinorPriorityInSchedule),
		yesNo(prefs.UseLettersForMajorPriority),
		yesNo(prefs.SeparatePriorityWithDot),
	)
}

func printUsers(w io.Writer, users []*domain.User) error {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLOGIN\tNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID(), u.LoginName(), fullName(u), u.Email())
	}
	return tw.Flush()
}

func printTask(w io.Writer, task *domain.Task) {
	fmt.Fprintf(w, "Task %d: %s\n", task.ID(), task.Description())
	fmt.Fprintf(w, "  Status:    %s\n", task.StatusString())
	fmt.Fprintf(w, "  Created:   %s by user %d, assigned to user %d\n",
		domain.FormatDate(task.CreationDate()), task.CreatorID(), task.AssignedToID())
	fmt.Fprintf(w, "  Start:     %s\n", domain.FormatDate(task.ScheduledStart()))
	fmt.Fprintf(w, "  Due:       %s\n", domain.FormatDate(task.DueDate()))
	if d, ok := task.CompletionDate(); ok {
		fmt.Fprintf(w, "  Completed: %s\n", domain.FormatDate(d))
	}
	fmt.Fprintf(w, "  Priority:  %s\n", priorityLabel(task))
	fmt.Fprintf(w, "  Effort:    %.1f of %d hours, %.0f%% complete\n",
		task.ActualEffortToDate(), task.EstimatedEffort(), task.PercentageComplete())
	if task.HasParentTask() {
		fmt.Fprintf(w, "  Parent:    %d\n", task.ParentTaskID())
	}
	if deps := task.Dependencies(); len(deps) > 0 {
		ids := make([]string, len(deps))
		for i, d := range deps {
			ids[i] = strconv.FormatInt(d, 10)
		}
		fmt.Fprintf(w, "  Depends:   %s\n", strings.Join(ids, ", "))
	}
}

func printTasks(w io.Writer, title string, tasks []*domain.Task) error {
	fmt.Fprintln(w, title)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  No tasks found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tSTART\tDUE\tPRIORITY\tSTATUS\tDESCRIPTION")
	for _, t := range tasks {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID(),
			domain.FormatDate(t.ScheduledStart()),
			domain.FormatDate(t.DueDate()),
			priorityLabel(t),
			t.StatusString(),
			t.Description(),
		)
	}
	return tw.Flush()
}

// priorityLabel renders the priority the way the schedule shows it, A1 or
// A.1 style, or "-" when the task has no priority group.
func priorityLabel(task *domain.Task) string {
	if task.PriorityGroup() <= 0 {
		return "-"
	}
	group := string(rune('A' + task.PriorityGroup() - 1))
	if task.Priority() <= 0 {
		return group
	}
	return group + strconv.Itoa(task.Priority())
}

func fullName(u *domain.User) string {
	parts := []string{u.FirstName()}
	if u.MiddleInitial() != "" {
		parts = append(parts, u.MiddleInitial())
	}
	parts = append(parts, u.LastName())
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// parseDateArg reads a YYYY-MM-DD date, "today", or a day offset from
// today such as +14 or -7.
func parseDateArg(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "today" {
		return domain.Today(), nil
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		days, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day offset %q", s)
		}
		return domain.TodayPlus(days), nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD, today or +N/-N days", s)
	}
	return d, nil
}
