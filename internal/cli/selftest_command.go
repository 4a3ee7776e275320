package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/repository"
	"task-planner/internal/services"
)

const (
	selftestLastName    = "PacMan"
	selftestFirstName   = "IN"
	selftestMiddle      = "BW"
	selftestEmail       = "pacmaninbw@gmail.com"
	selftestDescription = "Write the quarterly report"
)

func (r *RootCommand) newSelftestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the end to end checks against the configured database",
		Long: `selftest applies pending migrations, then registers a sample user and task
(reusing them when an earlier run left them behind) and checks every lookup
path against them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := r.app.Migrate(); err != nil {
				return r.handler.Handle("migrate", err, nil)
			}

			store, err := r.store()
			if err != nil {
				return err
			}

			failed := runSelftest(r.out, store)
			if failed > 0 {
				return fmt.Errorf("selftest: %d of %d checks failed", failed, len(selftestChecks))
			}
			fmt.Fprintln(r.out, "All checks passed")
			return nil
		},
	}
}

// selftestState carries what earlier checks established to later ones.
type selftestState struct {
	store    *Store
	user     *domain.User
	password string
	task     *domain.Task
}

type selftestCheck struct {
	name string
	run  func(s *selftestState) error
}

var selftestChecks = []selftestCheck{
	{"column contracts match projections", checkColumnContracts},
	{"sample user registered", checkRegisterUser},
	{"login with the generated password", checkLogin},
	{"login with a wrong password is refused", checkWrongPassword},
	{"sample task added and found by description", checkTaskByDescription},
	{"task found by id", checkTaskByID},
	{"unknown task reports one message", checkUnknownTask},
	{"agenda lists the sample task", checkAgenda},
}

// runSelftest runs every check in order and returns the number that failed.
// A check whose prerequisites failed is reported as skipped.
func runSelftest(out io.Writer, store *Store) int {
	state := &selftestState{store: store}
	failed := 0

	for _, check := range selftestChecks {
		err := check.run(state)
		switch {
		case err == errSkipped:
			fmt.Fprintf(out, "skip %s\n", check.name)
			failed++
		case err != nil:
			fmt.Fprintf(out, "FAIL %s: %v\n", check.name, err)
			failed++
		default:
			fmt.Fprintf(out, "ok   %s\n", check.name)
		}
	}
	return failed
}

var errSkipped = fmt.Errorf("skipped")

func checkColumnContracts(s *selftestState) error {
	return repository.VerifyColumnContracts()
}

func checkRegisterUser(s *selftestState) error {
	probe := domain.NewUserWithName(selftestLastName, selftestFirstName, selftestMiddle, selftestEmail, 0)
	probe.AutoGenerateLoginAndPassword()

	existing, err := s.store.Planner.FindUser(probe.LoginName())
	switch {
	case err == nil:
		s.user, s.password = existing, probe.Password()
		return nil
	case !errors.IsErrorType(err, errors.ErrorTypeNotFound):
		return err
	}

	user, password, err := s.store.Planner.RegisterUser(selftestLastName, selftestFirstName, selftestMiddle, selftestEmail)
	if err != nil {
		return err
	}
	s.user, s.password = user, password
	return nil
}

func checkLogin(s *selftestState) error {
	if s.user == nil {
		return errSkipped
	}
	user, err := s.store.Planner.Login(s.user.LoginName(), s.password)
	if err != nil {
		return err
	}
	if !s.user.Equal(user) {
		return fmt.Errorf("login returned %s, want %s", user.LoginName(), s.user.LoginName())
	}
	return nil
}

func checkWrongPassword(s *selftestState) error {
	if s.user == nil {
		return errSkipped
	}
	user, err := s.store.Planner.Login(s.user.LoginName(), s.password+"-wrong")
	if user != nil {
		return fmt.Errorf("wrong password accepted")
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return fmt.Errorf("want not found, got %v", err)
	}
	return nil
}

func checkTaskByDescription(s *selftestState) error {
	if s.user == nil {
		return errSkipped
	}

	planner := s.store.Planner
	task, err := planner.FindTask(s.user, selftestDescription)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		if _, err := planner.AddTask(s.user, services.TaskRequest{
			Description: selftestDescription,
			DueDate:     domain.TodayPlus(14),
		}); err != nil {
			return err
		}
		task, err = planner.FindTask(s.user, selftestDescription)
	}
	if err != nil {
		return err
	}

	if task.Description() != selftestDescription || task.CreatorID() != s.user.ID() {
		return fmt.Errorf("found task %d does not match", task.ID())
	}
	s.task = task
	return nil
}

func checkTaskByID(s *selftestState) error {
	if s.task == nil {
		return errSkipped
	}
	task, err := s.store.Planner.Task(s.task.ID())
	if err != nil {
		return err
	}
	if !s.task.Equal(task) {
		return fmt.Errorf("task %d does not match the description lookup", task.ID())
	}
	return nil
}

func checkUnknownTask(s *selftestState) error {
	task, err := s.store.Tasks.GetTaskByTaskID(0)
	if task != nil || !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return fmt.Errorf("want not found, got %v", err)
	}
	if msgs := s.store.Tasks.Errors(); !slices.Equal(msgs, []string{"Task not found!"}) {
		return fmt.Errorf("unexpected messages %q", msgs)
	}
	return nil
}

func checkAgenda(s *selftestState) error {
	if s.task == nil {
		return errSkipped
	}
	agenda, err := s.store.Planner.Agenda(s.user.LoginName())
	if err != nil {
		return err
	}
	for _, task := range agenda.Active {
		if task.Equal(s.task) {
			return nil
		}
	}
	return fmt.Errorf("task %d missing from the agenda", s.task.ID())
}
