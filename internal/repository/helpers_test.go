package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"task-planner/internal/config"
	"task-planner/internal/domain"
	"task-planner/internal/logging"
	"task-planner/internal/repository/migrations"
)

// countingExecutor wraps an Executor and counts the calls reaching it.
type countingExecutor struct {
	inner    Executor
	executes int
	byID     int
}

func (c *countingExecutor) Execute(op Operation) (*Results, error) {
	c.executes++
	return c.inner.Execute(op)
}

func (c *countingExecutor) ExecuteID(op IDOperation, id int64) (*Results, error) {
	c.byID++
	return c.inner.ExecuteID(op, id)
}

func (c *countingExecutor) calls() int {
	return c.executes + c.byID
}

type testStore struct {
	cfg      config.DatabaseConfig
	executor *countingExecutor
	tasks    *TaskRepository
	users    *UserRepository
}

// newTestStore migrates a fresh SQLite file and wires both repositories to
// it through a counting bridge.
func newTestStore(t *testing.T) *testStore {
	t.Helper()

	cfg := config.DatabaseConfig{Driver: "sqlite", Dir: t.TempDir(), Name: "planner_test.db"}

	db, err := sql.Open(cfg.DriverName(), cfg.DSN())
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrations(db, cfg.DriverName()))
	require.NoError(t, db.Close())

	connector, err := NewConnector(cfg)
	require.NoError(t, err)

	executor := &countingExecutor{inner: NewBridge(connector, logging.Nop())}
	return &testStore{
		cfg:      cfg,
		executor: executor,
		tasks:    NewTaskRepository(executor, logging.Nop()),
		users:    NewUserRepository(executor, NewBcryptHasher(bcrypt.MinCost), logging.Nop()),
	}
}

// exec runs raw SQL outside the repositories.
func (s *testStore) exec(t *testing.T, query string, args ...interface{}) {
	t.Helper()
	db, err := sql.Open(s.cfg.DriverName(), s.cfg.DSN())
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(query, args...)
	require.NoError(t, err)
}

// seedUser inserts a user with a generated login and records its id.
func (s *testStore) seedUser(t *testing.T, last, first, middle, email string) *domain.User {
	t.Helper()
	user := domain.NewUserWithName(last, first, middle, email, 0)
	user.AutoGenerateLoginAndPassword()

	id, err := s.users.Insert(user)
	require.NoError(t, err, s.users.ErrorMessages())
	require.NotZero(t, id)

	user.SetID(id)
	user.ClearModified()
	return user
}

// seedTask inserts a task for owner due in two weeks and records its id.
func (s *testStore) seedTask(t *testing.T, owner *domain.User, description string, mutate func(*domain.Task)) *domain.Task {
	t.Helper()
	task := domain.NewTaskWithDescription(owner, description)
	task.SetDueDate(domain.TodayPlus(14))
	if mutate != nil {
		mutate(task)
	}

	id, err := s.tasks.Insert(task)
	require.NoError(t, err, s.tasks.ErrorMessages())
	require.NotZero(t, id)

	task.SetID(id)
	task.ClearModified()
	return task
}
