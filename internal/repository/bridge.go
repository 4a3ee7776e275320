package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"task-planner/internal/config"
)

// Row is one materialized result row. Values are whatever the driver
// produced: int64, float64, string, []byte, bool, time.Time or nil.
type Row []interface{}

// Results is a fully materialized statement outcome. Nothing in it refers
// back to the connection that produced it.
type Results struct {
	Columns      []string
	Rows         []Row
	LastInsertID int64
	RowsAffected int64
}

// Empty reports whether the statement returned no rows.
func (r *Results) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Conn is the single-use connection handed to a bridged operation.
type Conn interface {
	// Query runs a row-returning statement and materializes every row.
	Query(query string, args ...interface{}) (*Results, error)
	// Exec runs a statement that returns no rows.
	Exec(query string, args ...interface{}) (*Results, error)
	// Insert runs an INSERT and returns the generated value of idColumn.
	Insert(query string, idColumn string, args ...interface{}) (int64, error)
	// Prepare compiles a statement for repeated execution on this connection.
	Prepare(query string) (Stmt, error)
	Close() error
}

// Stmt is a prepared statement bound to one Conn.
type Stmt interface {
	Exec(args ...interface{}) (*Results, error)
	Close() error
}

// Connector opens a fresh connection for every bridged call.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// Operation is one database round trip reading its inputs from staged
// parameters or from its closure.
type Operation func(conn Conn) (*Results, error)

// IDOperation is a round trip driven by a single explicit id. Nested
// fetches use it so they never touch the outer operation's staged values.
type IDOperation func(conn Conn, id int64) (*Results, error)

// Executor runs operations to completion and returns their results to the
// blocked caller.
type Executor interface {
	Execute(op Operation) (*Results, error)
	ExecuteID(op IDOperation, id int64) (*Results, error)
}

// Bridge is the Executor used in production. Every call runs on its own
// goroutine with its own connection, and the caller waits for the outcome.
// A Bridge holds no per-call state, but the repositories built on it do, so
// one repository must not be used from several goroutines at once.
type Bridge struct {
	connector Connector
	logger    zerolog.Logger
}

// NewBridge creates a bridge that opens connections through connector.
func NewBridge(connector Connector, logger zerolog.Logger) *Bridge {
	return &Bridge{connector: connector, logger: logger}
}

type outcome struct {
	results   *Results
	err       error
	panicked  bool
	recovered interface{}
}

// Execute runs op on a new connection and waits for it.
func (b *Bridge) Execute(op Operation) (*Results, error) {
	return b.run(op)
}

// ExecuteID runs op with id on a new connection and waits for it.
func (b *Bridge) ExecuteID(op IDOperation, id int64) (*Results, error) {
	return b.run(func(conn Conn) (*Results, error) {
		return op(conn, id)
	})
}

// run spawns the operation and blocks until it has finished and its
// connection is closed. A panic inside the operation is re-raised here, on
// the caller's goroutine.
func (b *Bridge) run(op Operation) (*Results, error) {
	callID := uuid.NewString()
	logger := b.logger.With().Str("call_id", callID).Logger()
	logger.Debug().Msg("bridged call started")

	done := make(chan outcome, 1)
	go func() {
		var out outcome
		defer func() {
			if r := recover(); r != nil {
				out = outcome{panicked: true, recovered: r}
			}
			done <- out
		}()

		conn, err := b.connector.Connect(context.Background())
		if err != nil {
			out.err = fmt.Errorf("connect: %w", err)
			return
		}
		defer func() {
			if cerr := conn.Close(); cerr != nil && out.err == nil {
				out.err = fmt.Errorf("close connection: %w", cerr)
			}
		}()

		out.results, out.err = op(conn)
	}()

	out := <-done
	if out.panicked {
		logger.Error().Interface("panic", out.recovered).Msg("bridged call panicked")
		panic(out.recovered)
	}
	if out.err != nil {
		logger.Debug().Err(out.err).Msg("bridged call failed")
		return nil, out.err
	}
	if out.results == nil {
		out.results = &Results{}
	}

	logger.Debug().Int("rows", len(out.results.Rows)).Msg("bridged call finished")
	return out.results, nil
}

// SQLConnector opens database/sql connections for one configured database.
type SQLConnector struct {
	dialect Dialect
	dsn     string
}

// NewConnector builds a connector from the database config section.
func NewConnector(cfg config.DatabaseConfig) (*SQLConnector, error) {
	dialect, err := DialectFor(cfg.DriverName())
	if err != nil {
		return nil, err
	}
	return &SQLConnector{dialect: dialect, dsn: cfg.DSN()}, nil
}

// Dialect returns the dialect of the connected database.
func (c *SQLConnector) Dialect() Dialect {
	return c.dialect
}

// Connect opens a dedicated handle limited to a single connection.
func (c *SQLConnector) Connect(ctx context.Context) (Conn, error) {
	db, err := sql.Open(c.dialect.Driver, c.dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &sqlConn{ctx: ctx, db: db, conn: conn, dialect: c.dialect}, nil
}

type sqlConn struct {
	ctx     context.Context
	db      *sql.DB
	conn    *sql.Conn
	dialect Dialect
}

func (c *sqlConn) Query(query string, args ...interface{}) (*Results, error) {
	rows, err := c.conn.QueryContext(c.ctx, c.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (c *sqlConn) Exec(query string, args ...interface{}) (*Results, error) {
	result, err := c.conn.ExecContext(c.ctx, c.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return execResults(result)
}

func (c *sqlConn) Insert(query string, idColumn string, args ...interface{}) (int64, error) {
	query = c.dialect.Rebind(query)

	if c.dialect.returningID {
		var id int64
		err := c.conn.QueryRowContext(c.ctx, c.dialect.ReturningID(query, idColumn), args...).Scan(&id)
		return id, err
	}

	result, err := c.conn.ExecContext(c.ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (c *sqlConn) Prepare(query string) (Stmt, error) {
	stmt, err := c.conn.PrepareContext(c.ctx, c.dialect.Rebind(query))
	if err != nil {
		return nil, err
	}
	return &sqlStmt{ctx: c.ctx, stmt: stmt}, nil
}

func (c *sqlConn) Close() error {
	return errors.Join(c.conn.Close(), c.db.Close())
}

type sqlStmt struct {
	ctx  context.Context
	stmt *sql.Stmt
}

func (s *sqlStmt) Exec(args ...interface{}) (*Results, error) {
	result, err := s.stmt.ExecContext(s.ctx, args...)
	if err != nil {
		return nil, err
	}
	return execResults(result)
}

func (s *sqlStmt) Close() error {
	return s.stmt.Close()
}

func collectRows(rows *sql.Rows) (*Results, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := &Results{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		results.Rows = append(results.Rows, Row(values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// execResults copies what the driver reports. LastInsertId is not supported
// by every driver, so its error is ignored.
func execResults(result sql.Result) (*Results, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	lastID, _ := result.LastInsertId()
	return &Results{LastInsertID: lastID, RowsAffected: affected}, nil
}
