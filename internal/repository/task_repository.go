package repository

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
)

// unstartedHorizonDays is how far ahead GetUnstartedDueForStartForAssignedUser looks.
const unstartedHorizonDays = 7

var (
	insertTaskQuery       = TaskColumns.Insert("TaskID")
	insertDependencyQuery = DependencyColumns.Insert("")

	selectTaskByIDQuery                 = TaskColumns.Select("WHERE TaskID = ?")
	selectTaskByDescriptionAndUserQuery = TaskColumns.Select("WHERE Description = ? AND AssignedTo = ?")
	selectUnstartedDueForStartQuery     = TaskColumns.Select("WHERE AssignedTo = ? AND ScheduledStart < ? AND (Status IS NULL OR Status = ?) ORDER BY ScheduledStart, TaskID")
	selectActiveForAssignedUserQuery    = TaskColumns.Select("WHERE AssignedTo = ? AND (Status IS NULL OR Status <> ?) ORDER BY ScheduledStart, TaskID")
	selectCompletedByAssignedAfterQuery = TaskColumns.Select("WHERE AssignedTo = ? AND Status = ? AND Completed >= ? ORDER BY Completed, TaskID")
	selectDependenciesQuery             = DependencyColumns.Select("WHERE TaskID = ? ORDER BY Dependency ASC")
)

// TaskRepository inserts and looks up tasks. Every public operation clears
// the error log first and leaves its diagnostics there; failures are also
// returned as errors. A TaskRepository serves one caller at a time.
type TaskRepository struct {
	core
}

// NewTaskRepository creates a task repository running its queries through executor.
func NewTaskRepository(executor Executor, logger zerolog.Logger) *TaskRepository {
	return &TaskRepository{core: newCore("TaskRepository", executor, logger)}
}

// Insert stores a new task and its dependency list and returns the generated
// id. Unmodified or incomplete tasks are rejected without touching the
// database. The task itself is not changed; callers record the id.
func (r *TaskRepository) Insert(task *domain.Task) (int64, error) {
	r.prepare()

	if !task.IsModified() {
		return 0, r.reject("Task not modified!", nil)
	}
	if err := task.Validate(); err != nil {
		return 0, r.reject("Task is missing required values!", err)
	}

	results, err := r.executor.Execute(func(conn Conn) (*Results, error) {
		return insertTask(conn, task)
	})
	if err != nil {
		return 0, r.fail("Insert", []interface{}{task.Description()}, err)
	}
	return results.LastInsertID, nil
}

// insertTask writes the task row, then one dependency row per dependency
// through a prepared statement on the same connection. The writes are not
// atomic.
func insertTask(conn Conn, task *domain.Task) (*Results, error) {
	dependencies := task.Dependencies()

	var parent interface{}
	if task.HasParentTask() {
		parent = task.ParentTaskID()
	}
	var status interface{}
	if task.HasStatus() {
		status = int(task.Status())
	}

	actualStart, hasActualStart := task.ActualStartDate()
	estimatedCompletion, hasEstimatedCompletion := task.EstimatedCompletion()
	completed, hasCompleted := task.CompletionDate()

	taskID, err := conn.Insert(insertTaskQuery, "TaskID",
		task.CreatorID(),
		task.AssignedToID(),
		task.Description(),
		parent,
		status,
		task.PercentageComplete(),
		FormatDateForDB(task.CreationDate()),
		FormatDateForDB(task.DueDate()),
		FormatDateForDB(task.ScheduledStart()),
		FormatOptionalDateForDB(actualStart, hasActualStart),
		FormatOptionalDateForDB(estimatedCompletion, hasEstimatedCompletion),
		FormatOptionalDateForDB(completed, hasCompleted),
		task.EstimatedEffort(),
		task.ActualEffortToDate(),
		task.PriorityGroup(),
		task.Priority(),
		FormatBoolForDB(task.IsPersonal()),
		len(dependencies),
	)
	if err != nil {
		return nil, err
	}

	if taskID > 0 && len(dependencies) > 0 {
		stmt, err := conn.Prepare(insertDependencyQuery)
		if err != nil {
			return nil, err
		}
		defer stmt.Close()

		for _, dependency := range dependencies {
			if _, err := stmt.Exec(taskID, dependency); err != nil {
				return nil, err
			}
		}
	}

	return &Results{LastInsertID: taskID, RowsAffected: 1}, nil
}

// GetTaskByTaskID returns the task stored under taskID.
func (r *TaskRepository) GetTaskByTaskID(taskID int64) (*domain.Task, error) {
	r.prepare()
	r.params.Stage(taskID)

	task, err := querySingle(&r.core, r.selectTaskByID, r.scanTask, taskNames, strconv.FormatInt(taskID, 10))
	if err != nil {
		return nil, r.fail("GetTaskByTaskID", []interface{}{taskID}, err)
	}
	return task, nil
}

func (r *TaskRepository) selectTaskByID(conn Conn) (*Results, error) {
	return conn.Query(selectTaskByIDQuery, Arg[int64](&r.params, 0))
}

// GetTaskByDescriptionAndAssignedUser returns the task assigned to user with
// exactly this description.
func (r *TaskRepository) GetTaskByDescriptionAndAssignedUser(description string, user *domain.User) (*domain.Task, error) {
	r.prepare()
	r.params.Stage(description, user.ID())

	task, err := querySingle(&r.core, r.selectTaskByDescriptionAndUser, r.scanTask, taskNames, description)
	if err != nil {
		return nil, r.fail("GetTaskByDescriptionAndAssignedUser", []interface{}{description, user.ID()}, err)
	}
	return task, nil
}

func (r *TaskRepository) selectTaskByDescriptionAndUser(conn Conn) (*Results, error) {
	return conn.Query(selectTaskByDescriptionAndUserQuery,
		Arg[string](&r.params, 0),
		Arg[int64](&r.params, 1),
	)
}

// GetParentTask returns the parent of task, or nil without error when the
// task has no parent.
func (r *TaskRepository) GetParentTask(task *domain.Task) (*domain.Task, error) {
	if !task.HasParentTask() {
		r.prepare()
		return nil, nil
	}
	return r.GetTaskByTaskID(task.ParentTaskID())
}

// GetUnstartedDueForStartForAssignedUser lists the user's tasks that have
// not been started and are scheduled to start within the next week.
func (r *TaskRepository) GetUnstartedDueForStartForAssignedUser(user *domain.User) ([]*domain.Task, error) {
	r.prepare()
	r.params.Stage(user.ID(), domain.TodayPlus(unstartedHorizonDays), domain.TaskStatusNotStarted)

	tasks, err := queryMultiple(&r.core, r.selectUnstartedDueForStart, r.scanTask, taskNames)
	if err != nil {
		return nil, r.fail("GetUnstartedDueForStartForAssignedUser", []interface{}{user.ID()}, err)
	}
	return tasks, nil
}

func (r *TaskRepository) selectUnstartedDueForStart(conn Conn) (*Results, error) {
	return conn.Query(selectUnstartedDueForStartQuery,
		Arg[int64](&r.params, 0),
		FormatDateForDB(Arg[time.Time](&r.params, 1)),
		int(Arg[domain.TaskStatus](&r.params, 2)),
	)
}

// GetActiveTasksForAssignedUser lists every task assigned to user that is
// not complete, in scheduled start order.
func (r *TaskRepository) GetActiveTasksForAssignedUser(user *domain.User) ([]*domain.Task, error) {
	r.prepare()
	r.params.Stage(user.ID(), domain.TaskStatusComplete)

	tasks, err := queryMultiple(&r.core, r.selectActiveForAssignedUser, r.scanTask, taskNames)
	if err != nil {
		return nil, r.fail("GetActiveTasksForAssignedUser", []interface{}{user.ID()}, err)
	}
	return tasks, nil
}

func (r *TaskRepository) selectActiveForAssignedUser(conn Conn) (*Results, error) {
	return conn.Query(selectActiveForAssignedUserQuery,
		Arg[int64](&r.params, 0),
		int(Arg[domain.TaskStatus](&r.params, 1)),
	)
}

// GetTasksCompletedByAssignedAfterDate lists the user's completed tasks
// whose completion date is on or after since.
func (r *TaskRepository) GetTasksCompletedByAssignedAfterDate(user *domain.User, since time.Time) ([]*domain.Task, error) {
	r.prepare()
	r.params.Stage(user.ID(), domain.TaskStatusComplete, domain.DateOf(since))

	tasks, err := queryMultiple(&r.core, r.selectCompletedByAssignedAfter, r.scanTask, taskNames)
	if err != nil {
		return nil, r.fail("GetTasksCompletedByAssignedAfterDate", []interface{}{user.ID(), domain.FormatDate(since)}, err)
	}
	return tasks, nil
}

func (r *TaskRepository) selectCompletedByAssignedAfter(conn Conn) (*Results, error) {
	return conn.Query(selectCompletedByAssignedAfterQuery,
		Arg[int64](&r.params, 0),
		int(Arg[domain.TaskStatus](&r.params, 1)),
		FormatDateForDB(Arg[time.Time](&r.params, 2)),
	)
}

// scanTask projects one row and loads the task's dependencies when the row
// advertises any. The dependency fetch is its own bridged call.
func (r *TaskRepository) scanTask(row Row) (*domain.Task, error) {
	task, dependencyCount, err := ScanTask(NewRowReader(row))
	if err != nil {
		return nil, err
	}
	if dependencyCount == 0 {
		return task, nil
	}

	results, err := r.executor.ExecuteID(selectTaskDependencies, task.ID())
	if err != nil {
		return nil, err
	}

	for _, dep := range results.Rows {
		reader := NewRowReader(dep)
		id := reader.Int64(dependencyIdx)
		if err := reader.Err(); err != nil {
			return nil, err
		}
		task.AddDependency(id)
	}
	task.ClearModified()
	return task, nil
}

// selectTaskDependencies loads the dependency ids of taskID in ascending
// order. A task that advertises dependencies but has none stored is corrupt.
func selectTaskDependencies(conn Conn, taskID int64) (*Results, error) {
	results, err := conn.Query(selectDependenciesQuery, taskID)
	if err != nil {
		return nil, err
	}
	if results.Empty() {
		return nil, errors.NewIntegrityError("task", strconv.FormatInt(taskID, 10), "dependencies expected but not found")
	}
	return results, nil
}
