package cli

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"task-planner/internal/config"
	"task-planner/internal/repository"
	"task-planner/internal/repository/migrations"
	"task-planner/internal/services"
)

// App holds what every command needs once configuration is resolved.
type App struct {
	config *config.Config
	logger zerolog.Logger
	out    io.Writer
}

// NewApp creates an application for cfg writing its output to out.
func NewApp(cfg *config.Config, logger zerolog.Logger, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{config: cfg, logger: logger, out: out}
}

// Store bundles the repositories opened on the configured database.
type Store struct {
	Connector *repository.SQLConnector
	Tasks     *repository.TaskRepository
	Users     *repository.UserRepository
	Planner   *services.PlannerService
}

// OpenStore wires the repositories to the configured database. The sqlite
// directory is created when it does not exist yet.
func (a *App) OpenStore() (*Store, error) {
	if err := a.ensureDatabaseDir(); err != nil {
		return nil, err
	}

	connector, err := repository.NewConnector(a.config.Database)
	if err != nil {
		return nil, err
	}

	bridge := repository.NewBridge(connector, a.logger)
	tasks := repository.NewTaskRepository(bridge, a.logger)
	users := repository.NewUserRepository(bridge, repository.NewBcryptHasher(a.config.Security.BcryptCost), a.logger)

	return &Store{
		Connector: connector,
		Tasks:     tasks,
		Users:     users,
		Planner:   services.NewPlannerService(tasks, users, a.logger),
	}, nil
}

// Migrate applies pending schema migrations and returns the versions now
// applied.
func (a *App) Migrate() ([]int, error) {
	if err := a.ensureDatabaseDir(); err != nil {
		return nil, err
	}

	db, err := a.openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := migrations.RunMigrations(db, a.config.Database.DriverName()); err != nil {
		return nil, err
	}
	return migrations.AppliedVersions(db)
}

// MigrationStatus lists the known migrations and the versions applied.
func (a *App) MigrationStatus() ([]migrations.Migration, []int, error) {
	if err := a.ensureDatabaseDir(); err != nil {
		return nil, nil, err
	}

	known, err := migrations.LoadMigrations(a.config.Database.DriverName())
	if err != nil {
		return nil, nil, err
	}

	db, err := a.openDB()
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	applied, err := migrations.AppliedVersions(db)
	if err != nil {
		return nil, nil, err
	}
	return known, applied, nil
}

func (a *App) openDB() (*sql.DB, error) {
	db, err := sql.Open(a.config.Database.DriverName(), a.config.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func (a *App) ensureDatabaseDir() error {
	if a.config.Database.Driver != "sqlite" {
		return nil
	}
	if err := os.MkdirAll(a.config.Database.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
