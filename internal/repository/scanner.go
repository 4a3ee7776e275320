package repository

import (
	"fmt"
	"strconv"
	"time"

	"task-planner/internal/domain"
)

// RowReader reads typed values from a Row by position. The first failure
// sticks: later reads return zero values and Err reports that failure.
type RowReader struct {
	row Row
	err error
}

// NewRowReader wraps row.
func NewRowReader(row Row) *RowReader {
	return &RowReader{row: row}
}

// Err returns the first read failure.
func (r *RowReader) Err() error {
	return r.err
}

// IsNull reports whether column i holds NULL. Optional columns are read only
// after this check.
func (r *RowReader) IsNull(i int) bool {
	v, ok := r.value(i)
	return ok && v == nil
}

func (r *RowReader) value(i int) (interface{}, bool) {
	if r.err != nil {
		return nil, false
	}
	if i < 0 || i >= len(r.row) {
		r.err = fmt.Errorf("column %d out of range, row has %d columns", i, len(r.row))
		return nil, false
	}
	return r.row[i], true
}

// required returns column i and fails on NULL.
func (r *RowReader) required(i int) (interface{}, bool) {
	v, ok := r.value(i)
	if !ok {
		return nil, false
	}
	if v == nil {
		r.err = fmt.Errorf("column %d: unexpected NULL", i)
		return nil, false
	}
	return v, true
}

func (r *RowReader) fail(i int, want string, v interface{}) {
	r.err = fmt.Errorf("column %d: cannot read %T as %s", i, v, want)
}

func (r *RowReader) Int64(i int) int64 {
	v, ok := r.required(i)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case []byte:
		return r.parseInt(i, string(n))
	case string:
		return r.parseInt(i, n)
	}
	r.fail(i, "integer", v)
	return 0
}

func (r *RowReader) parseInt(i int, s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		r.err = fmt.Errorf("column %d: %w", i, err)
	}
	return n
}

func (r *RowReader) Int(i int) int {
	return int(r.Int64(i))
}

func (r *RowReader) Float64(i int) float64 {
	v, ok := r.required(i)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case []byte:
		return r.parseFloat(i, string(n))
	case string:
		return r.parseFloat(i, n)
	}
	r.fail(i, "float", v)
	return 0
}

func (r *RowReader) parseFloat(i int, s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %d: %w", i, err)
	}
	return f
}

func (r *RowReader) String(i int) string {
	v, ok := r.required(i)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	r.fail(i, "string", v)
	return ""
}

func (r *RowReader) Bool(i int) bool {
	return r.Int64(i) != 0
}

func (r *RowReader) Date(i int) time.Time {
	v, ok := r.required(i)
	if !ok {
		return time.Time{}
	}

	var s string
	switch d := v.(type) {
	case time.Time:
		return domain.DateOf(d)
	case string:
		s = d
	case []byte:
		s = string(d)
	default:
		r.fail(i, "date", v)
		return time.Time{}
	}

	d, err := ParseDateFromDB(s)
	if err != nil {
		r.err = fmt.Errorf("column %d: %w", i, err)
		return time.Time{}
	}
	return d
}

// ScanTask projects a TaskColumns row. Required columns are read by
// position, optional ones only when not NULL. The returned task is
// unmodified and its dependency list is still empty; the returned count
// says how many dependencies the caller must load.
func ScanTask(r *RowReader) (*domain.Task, int64, error) {
	task := domain.NewTask()

	task.SetID(r.Int64(taskIDIdx))
	task.SetCreatorID(r.Int64(createdByIdx))
	task.SetAssignedToID(r.Int64(assignedToIdx))
	task.SetDescription(r.String(descriptionIdx))
	task.SetPercentageComplete(r.Float64(percentageCompleteIdx))
	task.SetCreationDate(r.Date(createdOnIdx))
	task.SetDueDate(r.Date(requiredDeliveryIdx))
	task.SetScheduledStart(r.Date(scheduledStartIdx))
	task.SetEstimatedEffort(r.Int(estimatedEffortHoursIdx))
	task.SetActualEffortToDate(r.Float64(actualEffortHoursIdx))
	task.SetPriorityGroup(r.Int(schedulePriorityGroupIdx))
	task.SetPriority(r.Int(priorityInGroupIdx))
	task.SetPersonal(r.Bool(personalIdx))

	if !r.IsNull(parentTaskIdx) {
		task.SetParentTaskID(r.Int64(parentTaskIdx))
	}
	if !r.IsNull(statusIdx) {
		task.SetStatus(domain.TaskStatus(r.Int(statusIdx)))
	}
	if !r.IsNull(actualStartIdx) {
		task.SetActualStartDate(r.Date(actualStartIdx))
	}
	if !r.IsNull(estimatedCompletionIdx) {
		task.SetEstimatedCompletion(r.Date(estimatedCompletionIdx))
	}
	if !r.IsNull(completedIdx) {
		task.SetCompletionDate(r.Date(completedIdx))
	}

	dependencyCount := r.Int64(dependencyCountIdx)

	if err := r.Err(); err != nil {
		return nil, 0, err
	}

	task.ClearModified()
	return task, dependencyCount, nil
}

// ScanUser projects a UserColumns row into an unmodified user.
func ScanUser(r *RowReader) (*domain.User, error) {
	user := domain.NewUser()

	user.SetID(r.Int64(userIDIdx))
	user.SetLastName(r.String(lastNameIdx))
	user.SetFirstName(r.String(firstNameIdx))
	user.SetMiddleInitial(r.String(middleInitialIdx))
	user.SetEmail(r.String(emailAddressIdx))
	user.SetLoginName(r.String(loginNameIdx))
	user.SetPassword(r.String(passwordIdx))
	user.SetStartTime(r.String(dayStartIdx))
	user.SetEndTime(r.String(dayEndIdx))

	if !r.IsNull(priorityInScheduleIdx) {
		user.SetPriorityInSchedule(r.Bool(priorityInScheduleIdx))
	}
	if !r.IsNull(minorPriorityInScheduleIdx) {
		user.SetMinorPriorityInSchedule(r.Bool(minorPriorityInScheduleIdx))
	}
	if !r.IsNull(useLettersIdx) {
		user.SetUsingLettersForMajorPriority(r.Bool(useLettersIdx))
	}
	if !r.IsNull(dotSeparationIdx) {
		user.SetSeparatingPriorityWithDot(r.Bool(dotSeparationIdx))
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	user.ClearModified()
	return user, nil
}
