package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "task-planner/internal/errors"
	"task-planner/internal/validation"
)

// TaskStatus is the progress state of a task.
type TaskStatus int

const (
	TaskStatusNotStarted TaskStatus = iota
	TaskStatusOnHold
	TaskStatusWaitingForDependency
	TaskStatusWorkInProgress
	TaskStatusComplete
)

// TaskStatusUnknown is returned for names and stored values outside the enum.
const TaskStatusUnknown TaskStatus = -1

var taskStatusNames = map[TaskStatus]string{
	TaskStatusNotStarted:           "Not Started",
	TaskStatusOnHold:               "On Hold",
	TaskStatusWaitingForDependency: "Waiting for Dependency",
	TaskStatusWorkInProgress:       "Work in Progress",
	TaskStatusComplete:             "Completed",
}

// String returns the display name of the status.
func (s TaskStatus) String() string {
	if name, ok := taskStatusNames[s]; ok {
		return name
	}
	return "Unknown TaskStatus Value"
}

// IsValid reports whether s is one of the defined statuses.
func (s TaskStatus) IsValid() bool {
	_, ok := taskStatusNames[s]
	return ok
}

// ParseTaskStatus maps a display name back to its status.
func ParseTaskStatus(name string) TaskStatus {
	for status, statusName := range taskStatusNames {
		if statusName == name {
			return status
		}
	}
	return TaskStatusUnknown
}

// Task is a unit of scheduled work. Every setter marks the task modified;
// only modified tasks are accepted for insert.
type Task struct {
	modified bool

	id                  int64
	creatorID           int64
	assignedToID        int64
	description         string
	status              *TaskStatus
	parentTaskID        *int64
	percentageComplete  float64
	creationDate        time.Time
	dueDate             time.Time
	scheduledStart      time.Time
	actualStartDate     *time.Time
	estimatedCompletion *time.Time
	completionDate      *time.Time
	estimatedEffort     int
	actualEffortToDate  float64
	priorityGroup       int
	priority            int
	personal            bool
	dependencies        []int64
}

// NewTask creates an unmodified task created and scheduled to start today.
func NewTask() *Task {
	today := Today()
	return &Task{
		creationDate:   today,
		scheduledStart: today,
	}
}

// NewTaskForUser creates a task created by and assigned to creator.
func NewTaskForUser(creator *User) *Task {
	t := NewTask()
	t.SetCreatorID(creator.ID())
	t.SetAssignedToID(creator.ID())
	return t
}

// NewTaskWithDescription creates a task for creator with a description.
func NewTaskWithDescription(creator *User, description string) *Task {
	t := NewTaskForUser(creator)
	t.SetDescription(description)
	return t
}

func (t *Task) ID() int64 { return t.id }
func (t *Task) CreatorID() int64 { return t.creatorID }
func (t *Task) AssignedToID() int64 { return t.assignedToID }
func (t *Task) Description() string { return t.description }
func (t *Task) IsModified() bool { return t.modified }
func (t *Task) IsInDatabase() bool { return t.id > 0 }
func (t *Task) ClearModified() { t.modified = false }
func (t *Task) CreationDate() time.Time { return t.creationDate }
func (t *Task) DueDate() time.Time { return t.dueDate }
func (t *Task) ScheduledStart() time.Time { return t.scheduledStart }
func (t *Task) PercentageComplete() float64 { return t.percentageComplete }
func (t *Task) EstimatedEffort() int { return t.estimatedEffort }
func (t *Task) ActualEffortToDate() float64 { return t.actualEffortToDate }
func (t *Task) PriorityGroup() int { return t.priorityGroup }
func (t *Task) Priority() int { return t.priority }
func (t *Task) IsPersonal() bool { return t.personal }

// Status returns the task status; an unset status reads as not started.
func (t *Task) Status() TaskStatus {
	if t.status == nil {
		return TaskStatusNotStarted
	}
	return *t.status
}

// HasStatus reports whether a status was ever set.
func (t *Task) HasStatus() bool {
	return t.status != nil
}

// StatusString returns the display name of Status.
func (t *Task) StatusString() string {
	return t.Status().String()
}

// ParentTaskID returns the parent id, or 0 when the task has no parent.
func (t *Task) ParentTaskID() int64 {
	if t.parentTaskID == nil {
		return 0
	}
	return *t.parentTaskID
}

// HasParentTask reports whether a parent id was set.
func (t *Task) HasParentTask() bool {
	return t.parentTaskID != nil
}

// ActualStartDate returns the actual start date and whether it is set.
func (t *Task) ActualStartDate() (time.Time, bool) {
	return optionalDate(t.actualStartDate)
}

// EstimatedCompletion returns the estimated completion date and whether it is set.
func (t *Task) EstimatedCompletion() (time.Time, bool) {
	return optionalDate(t.estimatedCompletion)
}

// CompletionDate returns the completion date and whether it is set.
func (t *Task) CompletionDate() (time.Time, bool) {
	return optionalDate(t.completionDate)
}

// Dependencies returns a copy of the ids of tasks that must finish first.
func (t *Task) Dependencies() []int64 {
	deps := make([]int64, len(t.dependencies))
	copy(deps, t.dependencies)
	return deps
}

func (t *Task) SetID(id int64) {
	t.modified = true
	t.id = id
}

func (t *Task) SetCreatorID(id int64) {
	t.modified = true
	t.creatorID = id
}

func (t *Task) SetAssignedToID(id int64) {
	t.modified = true
	t.assignedToID = id
}

func (t *Task) SetDescription(description string) {
	t.modified = true
	t.description = description
}

func (t *Task) SetStatus(status TaskStatus) {
	t.modified = true
	t.status = &status
}

// SetStatusByName sets the status from its display name, such as
// "Work in Progress". Unknown names leave the task untouched.
func (t *Task) SetStatusByName(name string) error {
	status := ParseTaskStatus(name)
	if status == TaskStatusUnknown {
		return apperrors.NewInvalidInputError("status", name, "unknown task status")
	}
	t.SetStatus(status)
	return nil
}

func (t *Task) SetParentTaskID(id int64) {
	t.modified = true
	t.parentTaskID = &id
}

func (t *Task) SetPercentageComplete(percent float64) {
	t.modified = true
	t.percentageComplete = percent
}

func (t *Task) SetCreationDate(d time.Time) {
	t.modified = true
	t.creationDate = DateOf(d)
}

func (t *Task) SetDueDate(d time.Time) {
	t.modified = true
	t.dueDate = DateOf(d)
}

func (t *Task) SetScheduledStart(d time.Time) {
	t.modified = true
	t.scheduledStart = DateOf(d)
}

func (t *Task) SetActualStartDate(d time.Time) {
	t.modified = true
	t.actualStartDate = datePtr(d)
}

func (t *Task) SetEstimatedCompletion(d time.Time) {
	t.modified = true
	t.estimatedCompletion = datePtr(d)
}

func (t *Task) SetCompletionDate(d time.Time) {
	t.modified = true
	t.completionDate = datePtr(d)
}

func (t *Task) SetEstimatedEffort(hours int) {
	t.modified = true
	t.estimatedEffort = hours
}

func (t *Task) SetActualEffortToDate(hours float64) {
	t.modified = true
	t.actualEffortToDate = hours
}

func (t *Task) SetPriorityGroup(group int) {
	t.modified = true
	t.priorityGroup = group
}

// SetPriorityGroupLetter sets the group from a letter, 'A' being group 1.
func (t *Task) SetPriorityGroupLetter(letter byte) {
	t.SetPriorityGroup(int(letter) - 'A' + 1)
}

func (t *Task) SetPriority(priority int) {
	t.modified = true
	t.priority = priority
}

func (t *Task) SetPersonal(personal bool) {
	t.modified = true
	t.personal = personal
}

func (t *Task) AddDependency(taskID int64) {
	t.modified = true
	t.dependencies = append(t.dependencies, taskID)
}

// AddEffortHours adds hours to the effort spent so far.
func (t *Task) AddEffortHours(hours float64) {
	t.SetActualEffortToDate(t.actualEffortToDate + hours)
}

// MarkComplete stamps today as the completion date and sets the status
// to complete.
func (t *Task) MarkComplete() {
	t.SetCompletionDate(Today())
	t.SetStatus(TaskStatusComplete)
}

type taskRequiredValues struct {
	Description    string    `validate:"required,min=10"`
	CreationDate   time.Time `validate:"required"`
	DueDate        time.Time `validate:"required"`
	ScheduledStart time.Time `validate:"required"`
}

// Validate checks the fields an insert cannot do without.
func (t *Task) Validate() error {
	ve := validation.Struct(taskRequiredValues{
		Description:    t.description,
		CreationDate:   t.creationDate,
		DueDate:        t.dueDate,
		ScheduledStart: t.scheduledStart,
	})
	if ve == nil {
		return nil
	}
	return ve
}

// HasRequiredValues reports whether Validate passes.
func (t *Task) HasRequiredValues() bool {
	return t.Validate() == nil
}

// Equal compares the identity subset: id, description and creator.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id == other.id &&
		t.description == other.description &&
		t.creatorID == other.creatorID
}

func (t *Task) String() string {
	var b strings.Builder
	line := func(name string, value interface{}) {
		fmt.Fprintf(&b, "\t%s: %v\n", name, value)
	}

	b.WriteString("Task:\n")
	line("Task ID", t.id)
	line("Creator ID", t.creatorID)
	line("Assigned To ID", t.assignedToID)
	line("Description", t.description)
	line("Percentage Complete", t.percentageComplete)
	line("Creation Date", FormatDate(t.creationDate))
	line("Scheduled Start Date", FormatDate(t.scheduledStart))
	line("Due Date", FormatDate(t.dueDate))

	b.WriteString("Optional Fields\n")
	if t.status != nil {
		line("Status", t.StatusString())
	}
	if t.parentTaskID != nil {
		line("Parent ID", *t.parentTaskID)
	}
	if t.actualStartDate != nil {
		line("Actual Start Date", FormatDate(*t.actualStartDate))
	}
	if t.estimatedCompletion != nil {
		line("Estimated Completion Date", FormatDate(*t.estimatedCompletion))
	}
	if t.completionDate != nil {
		line("Completed Date", FormatDate(*t.completionDate))
	}
	if len(t.dependencies) > 0 {
		line("Dependencies", t.dependencies)
	}

	return b.String()
}

func optionalDate(d *time.Time) (time.Time, bool) {
	if d == nil {
		return time.Time{}, false
	}
	return *d, true
}

func datePtr(d time.Time) *time.Time {
	date := DateOf(d)
	return &date
}
