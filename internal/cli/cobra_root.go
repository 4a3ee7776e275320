package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"task-planner/internal/config"
	"task-planner/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	app        *App
	handler    *ErrorHandler
	configPath string
	out        io.Writer
	errOut     io.Writer
}

// NewRootCommand creates the root cobra command with global flags. Command
// output goes to out, logs to errOut.
func NewRootCommand(out, errOut io.Writer) *RootCommand {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	root := &RootCommand{
		handler: NewErrorHandler(),
		out:     out,
		errOut:  errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "planner",
		Short: "Task and user store for the personal planner",
		Long: `planner manages the task and user database behind the personal planner.

EXAMPLES:
  planner migrate                                   # Create or upgrade the schema
  planner user add PacMan IN --middle BW            # Register a user
  planner login PacManINB PacManINB                 # Check a login
  planner task add PacManINB "Write the quarterly report" --due +14
  planner task agenda PacManINB                     # Tasks due to start and still open
  planner selftest                                  # Run the end to end checks

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

    PLANNER_DATABASE_DRIVER                sqlite or postgres (default: sqlite)
    PLANNER_DATABASE_DIR                   sqlite directory (default: .)
    PLANNER_DATABASE_NAME                  sqlite file or postgres database (default: planner.db)
    PLANNER_DATABASE_HOST                  postgres host (default: localhost)
    PLANNER_DATABASE_PORT                  postgres port (default: 5432)
    PLANNER_DATABASE_USER                  postgres user
    PLANNER_DATABASE_PASSWORD              postgres password
    PLANNER_SECURITY_BCRYPT_COST           bcrypt cost for stored passwords (default: 10)
    PLANNER_APPLICATION_LOG_LEVEL          zerolog level (default: info)
    PLANNER_APPLICATION_LOG_FORMAT         console or json (default: console)
    PLANNER_DEBUG                          force debug logging

  A .env file in the working directory is read before the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}
	root.cmd.SetOut(out)
	root.cmd.SetErr(errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs replaces the process arguments, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configPath, "config", "", "YAML configuration file")

	// Database configuration
	flags.String("db-driver", "", "Database driver, sqlite or postgres (overrides PLANNER_DATABASE_DRIVER)")
	flags.String("db-host", "", "Postgres host (overrides PLANNER_DATABASE_HOST)")
	flags.Int("db-port", 0, "Postgres port (overrides PLANNER_DATABASE_PORT)")
	flags.String("db-user", "", "Postgres user (overrides PLANNER_DATABASE_USER)")
	flags.String("db-password", "", "Postgres password (overrides PLANNER_DATABASE_PASSWORD)")
	flags.String("db-name", "", "Database name or sqlite file name (overrides PLANNER_DATABASE_NAME)")
	flags.String("db-dir", "", "Directory of the sqlite file (overrides PLANNER_DATABASE_DIR)")

	// Application configuration
	flags.String("env", "", "Environment: development, testing or production (overrides PLANNER_APPLICATION_ENVIRONMENT)")
	flags.Bool("verbose", false, "Enable debug logging (overrides PLANNER_APPLICATION_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides PLANNER_APPLICATION_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, console or json (overrides PLANNER_APPLICATION_LOG_FORMAT)")
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newMigrateCommand(),
		r.newUserCommand(),
		r.newLoginCommand(),
		r.newTaskCommand(),
		r.newSelftestCommand(),
	)
}

// overridesFromFlags collects the flags set on the command line. Flags left
// at their defaults do not override anything.
func overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	overrides.DBDriver = str("db-driver")
	overrides.DBHost = str("db-host")
	overrides.DBUser = str("db-user")
	overrides.DBPassword = str("db-password")
	overrides.DBName = str("db-name")
	overrides.DBDir = str("db-dir")
	overrides.Environment = str("env")
	overrides.LogLevel = str("log-level")
	overrides.LogFormat = str("log-format")

	if flags.Changed("db-port") {
		port, _ := flags.GetInt("db-port")
		overrides.DBPort = &port
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	return overrides
}

// setup resolves configuration and logging before any subcommand runs
func (r *RootCommand) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.configPath, overridesFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(cfg.Application, r.errOut)
	logging.SetGlobal(logger)
	logging.Debugf("configuration loaded: driver=%s name=%s", cfg.Database.Driver, cfg.Database.Name)

	r.app = NewApp(cfg, logger, r.out)
	return nil
}

// store opens the repositories for one command run
func (r *RootCommand) store() (*Store, error) {
	if r.app == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return r.app.OpenStore()
}
