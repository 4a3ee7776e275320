package repository

import (
	"fmt"
	"strings"
)

// ColumnSet is the positional contract between a query shape and the code
// that projects its rows. Projection reads values by index, so the index
// constants of each set are verified against Columns in tests and by
// VerifyColumnContracts at startup.
type ColumnSet struct {
	Name    string
	Version int
	Table   string
	Columns []string
}

// Index returns the position of column name, or -1.
func (c ColumnSet) Index(name string) int {
	for i, col := range c.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Verify checks that every name in indexes sits at its recorded position and
// that indexes covers the whole set.
func (c ColumnSet) Verify(indexes map[string]int) error {
	if len(indexes) != len(c.Columns) {
		return fmt.Errorf("%s v%d: %d indexes for %d columns", c.Name, c.Version, len(indexes), len(c.Columns))
	}
	for name, want := range indexes {
		if got := c.Index(name); got != want {
			return fmt.Errorf("%s v%d: column %s is at %d, projection reads %d", c.Name, c.Version, name, got, want)
		}
	}
	return nil
}

// List renders the column list in contract order.
func (c ColumnSet) List() string {
	return strings.Join(c.Columns, ", ")
}

// Select renders a SELECT of the whole set followed by clause.
func (c ColumnSet) Select(clause string) string {
	query := "SELECT " + c.List() + " FROM " + c.Table
	if clause != "" {
		query += " " + clause
	}
	return query
}

// Insert renders an INSERT of every column except the generated key.
func (c ColumnSet) Insert(generated string) string {
	cols := make([]string, 0, len(c.Columns))
	for _, col := range c.Columns {
		if col != generated {
			cols = append(cols, col)
		}
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", c.Table, strings.Join(cols, ", "), marks)
}

// TaskColumns is the row shape of every task query.
var TaskColumns = ColumnSet{
	Name:    "task",
	Version: 1,
	Table:   "Tasks",
	Columns: []string{
		"TaskID", "CreatedBy", "AssignedTo", "Description", "ParentTask", "Status",
		"PercentageComplete", "CreatedOn", "RequiredDelivery", "ScheduledStart",
		"ActualStart", "EstimatedCompletion", "Completed", "EstimatedEffortHours",
		"ActualEffortHours", "SchedulePriorityGroup", "PriorityInGroup", "Personal",
		"DependencyCount",
	},
}

const (
	taskIDIdx = iota
	createdByIdx
	assignedToIdx
	descriptionIdx
	parentTaskIdx
	statusIdx
	percentageCompleteIdx
	createdOnIdx
	requiredDeliveryIdx
	scheduledStartIdx
	actualStartIdx
	estimatedCompletionIdx
	completedIdx
	estimatedEffortHoursIdx
	actualEffortHoursIdx
	schedulePriorityGroupIdx
	priorityInGroupIdx
	personalIdx
	dependencyCountIdx
)

var taskColumnIndexes = map[string]int{
	"TaskID":                taskIDIdx,
	"CreatedBy":             createdByIdx,
	"AssignedTo":            assignedToIdx,
	"Description":           descriptionIdx,
	"ParentTask":            parentTaskIdx,
	"Status":                statusIdx,
	"PercentageComplete":    percentageCompleteIdx,
	"CreatedOn":             createdOnIdx,
	"RequiredDelivery":      requiredDeliveryIdx,
	"ScheduledStart":        scheduledStartIdx,
	"ActualStart":           actualStartIdx,
	"EstimatedCompletion":   estimatedCompletionIdx,
	"Completed":             completedIdx,
	"EstimatedEffortHours":  estimatedEffortHoursIdx,
	"ActualEffortHours":     actualEffortHoursIdx,
	"SchedulePriorityGroup": schedulePriorityGroupIdx,
	"PriorityInGroup":       priorityInGroupIdx,
	"Personal":              personalIdx,
	"DependencyCount":       dependencyCountIdx,
}

// DependencyColumns is the row shape of the dependency lookup.
var DependencyColumns = ColumnSet{
	Name:    "task_dependency",
	Version: 1,
	Table:   "TaskDependencies",
	Columns: []string{"TaskID", "Dependency"},
}

const (
	depTaskIDIdx = iota
	dependencyIdx
)

var dependencyColumnIndexes = map[string]int{
	"TaskID":     depTaskIDIdx,
	"Dependency": dependencyIdx,
}

// UserColumns is the row shape of every user query.
var UserColumns = ColumnSet{
	Name:    "user",
	Version: 1,
	Table:   "UserProfile",
	Columns: []string{
		"UserID", "LastName", "FirstName", "MiddleInitial", "EmailAddress", "LoginName",
		"HashedPassWord", "ScheduleDayStart", "ScheduleDayEnd", "IncludePriorityInSchedule",
		"IncludeMinorPriorityInSchedule", "UseLettersForMajorPriority", "SeparatePriorityWithDot",
	},
}

const (
	userIDIdx = iota
	lastNameIdx
	firstNameIdx
	middleInitialIdx
	emailAddressIdx
	loginNameIdx
	passwordIdx
	dayStartIdx
	dayEndIdx
	priorityInScheduleIdx
	minorPriorityInScheduleIdx
	useLettersIdx
	dotSeparationIdx
)

var userColumnIndexes = map[string]int{
	"UserID":                         userIDIdx,
	"LastName":                       lastNameIdx,
	"FirstName":                      firstNameIdx,
	"MiddleInitial":                  middleInitialIdx,
	"EmailAddress":                   emailAddressIdx,
	"LoginName":                      loginNameIdx,
	"HashedPassWord":                 passwordIdx,
	"ScheduleDayStart":               dayStartIdx,
	"ScheduleDayEnd":                 dayEndIdx,
	"IncludePriorityInSchedule":      priorityInScheduleIdx,
	"IncludeMinorPriorityInSchedule": minorPriorityInScheduleIdx,
	"UseLettersForMajorPriority":     useLettersIdx,
	"SeparatePriorityWithDot":        dotSeparationIdx,
}

// VerifyColumnContracts checks every column set against the indexes its
// projection uses.
func VerifyColumnContracts() error {
	checks := []struct {
		set     ColumnSet
		indexes map[string]int
	}{
		{TaskColumns, taskColumnIndexes},
		{DependencyColumns, dependencyColumnIndexes},
		{UserColumns, userColumnIndexes},
	}
	for _, check := range checks {
		if err := check.set.Verify(check.indexes); err != nil {
			return err
		}
	}
	return nil
}
