package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyColumnContracts(t *testing.T) {
	assert.NoError(t, VerifyColumnContracts())
}

func TestColumnSet_Verify(t *testing.T) {
	set := ColumnSet{Name: "pair", Version: 2, Table: "Pairs", Columns: []string{"A", "B"}}

	assert.NoError(t, set.Verify(map[string]int{"A": 0, "B": 1}))
	assert.EqualError(t, set.Verify(map[string]int{"A": 1, "B": 0}), "pair v2: column A is at 0, projection reads 1")
	assert.EqualError(t, set.Verify(map[string]int{"A": 0}), "pair v2: 1 indexes for 2 columns")
}

func TestColumnSet_Rendering(t *testing.T) {
	set := ColumnSet{Name: "pair", Version: 1, Table: "Pairs", Columns: []string{"ID", "A", "B"}}

	assert.Equal(t, 2, set.Index("B"))
	assert.Equal(t, -1, set.Index("C"))
	assert.Equal(t, "SELECT ID, A, B FROM Pairs", set.Select(""))
	assert.Equal(t, "SELECT ID, A, B FROM Pairs WHERE A = ?", set.Select("WHERE A = ?"))
	assert.Equal(t, "INSERT INTO Pairs (A, B) VALUES (?, ?)", set.Insert("ID"))
	assert.Equal(t, "INSERT INTO Pairs (ID, A, B) VALUES (?, ?, ?)", set.Insert(""))
}

func TestQueriesUseContractOrder(t *testing.T) {
	assert.Equal(t, "SELECT TaskID, Dependency FROM TaskDependencies WHERE TaskID = ? ORDER BY Dependency ASC", selectDependenciesQuery)
	assert.Equal(t, "INSERT INTO TaskDependencies (TaskID, Dependency) VALUES (?, ?)", insertDependencyQuery)
	assert.Contains(t, selectUserByLoginQuery, "SELECT "+UserColumns.List()+" FROM UserProfile")
	assert.NotContains(t, insertTaskQuery, "TaskID,")
}
