package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/logging"
)

type fakeConn struct {
	closed   bool
	closeErr error
}

func (c *fakeConn) Query(query string, args ...interface{}) (*Results, error) {
	return &Results{Columns: []string{"n"}, Rows: []Row{{int64(len(args))}}}, nil
}

func (c *fakeConn) Exec(query string, args ...interface{}) (*Results, error) {
	return &Results{RowsAffected: 1}, nil
}

func (c *fakeConn) Insert(query string, idColumn string, args ...interface{}) (int64, error) {
	return 42, nil
}

func (c *fakeConn) Prepare(query string) (Stmt, error) {
	return nil, fmt.Errorf("prepare not supported")
}

func (c *fakeConn) Close() error {
	c.closed = true
	return c.closeErr
}

type fakeConnector struct {
	conns []*fakeConn
	err   error
}

func (f *fakeConnector) Connect(ctx context.Context) (Conn, error) {
	if f.err != nil {
		return nil, f.err
	}
	conn := &fakeConn{}
	f.conns = append(f.conns, conn)
	return conn, nil
}

func TestBridge_FreshConnectionPerCall(t *testing.T) {
	connector := &fakeConnector{}
	bridge := NewBridge(connector, logging.Nop())

	for i := 0; i < 3; i++ {
		results, err := bridge.Execute(func(conn Conn) (*Results, error) {
			return conn.Query("SELECT ?", i)
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), results.Rows[0][0])
	}

	require.Len(t, connector.conns, 3)
	for _, conn := range connector.conns {
		assert.True(t, conn.closed)
	}
}

func TestBridge_ExecuteIDPassesID(t *testing.T) {
	bridge := NewBridge(&fakeConnector{}, logging.Nop())

	var got int64
	_, err := bridge.ExecuteID(func(conn Conn, id int64) (*Results, error) {
		got = id
		return nil, nil
	}, 17)

	require.NoError(t, err)
	assert.Equal(t, int64(17), got)
}

func TestBridge_NilResultsBecomeEmpty(t *testing.T) {
	bridge := NewBridge(&fakeConnector{}, logging.Nop())

	results, err := bridge.Execute(func(conn Conn) (*Results, error) { return nil, nil })

	require.NoError(t, err)
	require.NotNil(t, results)
	assert.True(t, results.Empty())
}

func TestBridge_OperationError(t *testing.T) {
	connector := &fakeConnector{}
	bridge := NewBridge(connector, logging.Nop())

	results, err := bridge.Execute(func(conn Conn) (*Results, error) {
		return nil, fmt.Errorf("syntax error")
	})

	assert.Nil(t, results)
	assert.EqualError(t, err, "syntax error")
	require.Len(t, connector.conns, 1)
	assert.True(t, connector.conns[0].closed)
}

func TestBridge_ConnectError(t *testing.T) {
	bridge := NewBridge(&fakeConnector{err: fmt.Errorf("no such host")}, logging.Nop())

	called := false
	_, err := bridge.Execute(func(conn Conn) (*Results, error) {
		called = true
		return nil, nil
	})

	assert.EqualError(t, err, "connect: no such host")
	assert.False(t, called)
}

func TestBridge_CloseErrorReported(t *testing.T) {
	connector := &fakeConnector{}
	bridge := NewBridge(connector, logging.Nop())

	_, err := bridge.Execute(func(conn Conn) (*Results, error) {
		conn.(*fakeConn).closeErr = fmt.Errorf("broken pipe")
		return &Results{}, nil
	})

	assert.EqualError(t, err, "close connection: broken pipe")
}

func TestBridge_PanicReraisedAfterClose(t *testing.T) {
	connector := &fakeConnector{}
	bridge := NewBridge(connector, logging.Nop())

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = bridge.Execute(func(conn Conn) (*Results, error) {
			panic("boom")
		})
	})

	require.Len(t, connector.conns, 1)
	assert.True(t, connector.conns[0].closed)
}

func TestSQLConnector(t *testing.T) {
	s := newTestStore(t)

	connector, err := NewConnector(s.cfg)
	require.NoError(t, err)
	assert.Equal(t, SQLite, connector.Dialect())

	bridge := NewBridge(connector, logging.Nop())
	results, err := bridge.Execute(func(conn Conn) (*Results, error) {
		if _, err := conn.Exec("CREATE TABLE Scratch (ID INTEGER PRIMARY KEY AUTOINCREMENT, Name TEXT)"); err != nil {
			return nil, err
		}
		id, err := conn.Insert("INSERT INTO Scratch (Name) VALUES (?)", "ID", "first")
		if err != nil {
			return nil, err
		}

		stmt, err := conn.Prepare("INSERT INTO Scratch (Name) VALUES (?)")
		if err != nil {
			return nil, err
		}
		defer stmt.Close()
		if _, err := stmt.Exec("second"); err != nil {
			return nil, err
		}

		results, err := conn.Query("SELECT ID, Name FROM Scratch WHERE ID >= ? ORDER BY ID", id)
		if err != nil {
			return nil, err
		}
		results.LastInsertID = id
		return results, nil
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), results.LastInsertID)
	assert.Equal(t, []string{"ID", "Name"}, results.Columns)
	require.Len(t, results.Rows, 2)
	assert.Equal(t, "second", NewRowReader(results.Rows[1]).String(1))
}

func TestNewConnector_UnknownDriver(t *testing.T) {
	s := newTestStore(t)
	cfg := s.cfg
	cfg.Driver = "oracle"

	_, err := NewConnector(cfg)
	assert.Error(t, err)
}
