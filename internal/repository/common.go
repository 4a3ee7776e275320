package repository

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"task-planner/internal/errors"
)

// entityNames holds the per-entity wording of cardinality messages.
type entityNames struct {
	resource  string
	notFound  string
	tooMany   string
	noneFound string
}

var (
	taskNames = entityNames{
		resource:  "task",
		notFound:  "Task not found!",
		tooMany:   "Too many tasks found to process!",
		noneFound: "No Tasks found!",
	}
	userNames = entityNames{
		resource:  "user",
		notFound:  "User not found!",
		tooMany:   "Too many users found to process!",
		noneFound: "No users found!",
	}
)

// core is the state every repository carries for its operation in flight.
type core struct {
	name     string
	executor Executor
	params   Params
	errs     ErrorLog
	logger   zerolog.Logger
}

func newCore(name string, executor Executor, logger zerolog.Logger) core {
	return core{
		name:     name,
		executor: executor,
		logger:   logger.With().Str("repository", name).Logger(),
	}
}

// prepare starts a public operation with an empty error log and no
// staged parameters.
func (c *core) prepare() {
	c.errs.Clear()
	c.params.Reset()
}

// ErrorMessages returns the diagnostics of the last operation, one per line.
func (c *core) ErrorMessages() string {
	return c.errs.String()
}

// Errors returns the diagnostics of the last operation.
func (c *core) Errors() []string {
	return c.errs.Messages()
}

// reject records a validation failure that stopped an operation before it
// reached the database.
func (c *core) reject(message string, cause error) error {
	c.errs.Append(message)
	c.logger.Debug().Err(cause).Msg(message)
	return errors.NewValidationError(message, cause)
}

// fail records a failure caught at the boundary of operation op and returns
// it as an AppError tagged with the operation. Cardinality errors already
// left their message in the log and are passed through.
func (c *core) fail(op string, args []interface{}, err error) error {
	call := fmt.Sprintf("%s.%s(%s)", c.name, op, formatArgs(args))

	appErr, ok := errors.AsAppError(err)
	switch {
	case !ok:
		c.errs.Appendf("In %s: %v", call, err)
		appErr = errors.NewDatabaseError(call, err)
	case appErr.IsType(errors.ErrorTypeNotFound), appErr.IsType(errors.ErrorTypeTooManyResults):
		return appErr.WithContext("operation", op)
	default:
		c.errs.Appendf("In %s: %v", call, err)
	}
	appErr.WithContext("operation", op)

	if errors.ShouldLogError(appErr) {
		c.logger.Warn().Err(err).Str("operation", op).Msg("repository operation failed")
	}
	return appErr
}

// expectOne enforces by-key cardinality on a result set.
func (c *core) expectOne(results *Results, names entityNames, identifier string) (Row, error) {
	switch {
	case results.Empty():
		c.errs.Append(names.notFound)
		return nil, errors.NewNotFoundError(names.resource, identifier)
	case len(results.Rows) > 1:
		c.errs.Append(names.tooMany)
		return nil, errors.NewTooManyResultsError(names.resource, identifier, len(results.Rows))
	}
	return results.Rows[0], nil
}

// querySingle runs op and projects its only row. Zero or several rows are
// reported as cardinality errors.
func querySingle[T any](c *core, op Operation, scan func(Row) (*T, error), names entityNames, identifier string) (*T, error) {
	results, err := c.executor.Execute(op)
	if err != nil {
		return nil, err
	}

	row, err := c.expectOne(results, names, identifier)
	if err != nil {
		return nil, err
	}
	return scan(row)
}

// queryMultiple runs op and projects every row. An empty result is not an
// error, but it is noted in the error log.
func queryMultiple[T any](c *core, op Operation, scan func(Row) (*T, error), names entityNames) ([]*T, error) {
	results, err := c.executor.Execute(op)
	if err != nil {
		return nil, err
	}

	if results.Empty() {
		c.errs.Append(names.noneFound)
		return []*T{}, nil
	}

	items := make([]*T, 0, len(results.Rows))
	for _, row := range results.Rows {
		item, err := scan(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func formatArgs(args []interface{}) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, ", ")
}
