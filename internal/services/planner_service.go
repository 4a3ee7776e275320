package services

import (
	"time"

	"github.com/rs/zerolog"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
)

// TaskStore is the task persistence the planner works against.
type TaskStore interface {
	Insert(task *domain.Task) (int64, error)
	GetTaskByTaskID(taskID int64) (*domain.Task, error)
	GetTaskByDescriptionAndAssignedUser(description string, user *domain.User) (*domain.Task, error)
	GetParentTask(task *domain.Task) (*domain.Task, error)
	GetUnstartedDueForStartForAssignedUser(user *domain.User) ([]*domain.Task, error)
	GetActiveTasksForAssignedUser(user *domain.User) ([]*domain.Task, error)
	GetTasksCompletedByAssignedAfterDate(user *domain.User, since time.Time) ([]*domain.Task, error)
	Errors() []string
}

// UserStore is the user persistence the planner works against.
type UserStore interface {
	Insert(user *domain.User) (int64, error)
	GetUserByLoginName(login string) (*domain.User, error)
	GetUserByLoginAndPassword(login, password string) (*domain.User, error)
	GetAllUsers() ([]*domain.User, error)
	Errors() []string
}

// TaskRequest describes a task to create. Zero values leave the task's
// defaults in place.
type TaskRequest struct {
	Description     string
	DueDate         time.Time
	ScheduledStart  time.Time
	EstimatedEffort int
	PriorityGroup   byte
	Priority        int
	Personal        bool
	ParentTaskID    int64
	Dependencies    []int64
}

// Agenda is the current workload of one user.
type Agenda struct {
	User        *domain.User
	DueForStart []*domain.Task
	Active      []*domain.Task
}

// PlannerService runs the planner workflows on top of the repositories.
type PlannerService struct {
	tasks  TaskStore
	users  UserStore
	logger zerolog.Logger
}

// NewPlannerService creates a planner over tasks and users.
func NewPlannerService(tasks TaskStore, users UserStore, logger zerolog.Logger) *PlannerService {
	return &PlannerService{
		tasks:  tasks,
		users:  users,
		logger: logger.With().Str("service", "planner").Logger(),
	}
}

// RegisterUser stores a new user whose login name and initial password are
// derived from the name. It returns the stored user and the plain initial
// password, which is not kept anywhere else.
func (s *PlannerService) RegisterUser(lastName, firstName, middleInitial, email string) (*domain.User, string, error) {
	user := domain.NewUserWithName(lastName, firstName, middleInitial, email, 0)
	user.AutoGenerateLoginAndPassword()
	password := user.Password()

	id, err := s.users.Insert(user)
	if err != nil {
		return nil, "", err
	}

	user.SetID(id)
	user.ClearModified()
	s.logger.Info().Int64("user_id", id).Str("login", user.LoginName()).Msg("user registered")
	return user, password, nil
}

// Login returns the user whose login name and password match.
func (s *PlannerService) Login(login, password string) (*domain.User, error) {
	return s.users.GetUserByLoginAndPassword(login, password)
}

// FindUser returns the user with the given login name.
func (s *PlannerService) FindUser(login string) (*domain.User, error) {
	return s.users.GetUserByLoginName(login)
}

// Users lists every registered user.
func (s *PlannerService) Users() ([]*domain.User, error) {
	return s.users.GetAllUsers()
}

// AddTask creates a task owned by and assigned to owner. A parent task or
// dependency that does not exist is reported before anything is stored.
func (s *PlannerService) AddTask(owner *domain.User, req TaskRequest) (*domain.Task, error) {
	if req.ParentTaskID != 0 {
		if _, err := s.tasks.GetTaskByTaskID(req.ParentTaskID); err != nil {
			return nil, err
		}
	}
	for _, dependency := range req.Dependencies {
		if _, err := s.tasks.GetTaskByTaskID(dependency); err != nil {
			return nil, err
		}
	}

	task := domain.NewTaskWithDescription(owner, req.Description)
	task.SetDueDate(req.DueDate)
	if !req.ScheduledStart.IsZero() {
		task.SetScheduledStart(req.ScheduledStart)
	}
	if req.EstimatedEffort > 0 {
		task.SetEstimatedEffort(req.EstimatedEffort)
	}
	if req.PriorityGroup != 0 {
		if req.PriorityGroup < 'A' || req.PriorityGroup > 'Z' {
			return nil, errors.NewInvalidInputError("priority_group", string(req.PriorityGroup), "must be a letter from A to Z")
		}
		task.SetPriorityGroupLetter(req.PriorityGroup)
	}
	if req.Priority > 0 {
		task.SetPriority(req.Priority)
	}
	if req.Personal {
		task.SetPersonal(true)
	}
	if req.ParentTaskID != 0 {
		task.SetParentTaskID(req.ParentTaskID)
	}
	for _, dependency := range req.Dependencies {
		task.AddDependency(dependency)
	}

	id, err := s.tasks.Insert(task)
	if err != nil {
		return nil, err
	}

	task.SetID(id)
	task.ClearModified()
	s.logger.Info().Int64("task_id", id).Int64("user_id", owner.ID()).Msg("task added")
	return task, nil
}

// Task returns the task stored under taskID.
func (s *PlannerService) Task(taskID int64) (*domain.Task, error) {
	return s.tasks.GetTaskByTaskID(taskID)
}

// FindTask returns the task assigned to user with exactly this description.
func (s *PlannerService) FindTask(user *domain.User, description string) (*domain.Task, error) {
	return s.tasks.GetTaskByDescriptionAndAssignedUser(description, user)
}

// ParentOf returns the parent of task, or nil when it has none.
func (s *PlannerService) ParentOf(task *domain.Task) (*domain.Task, error) {
	return s.tasks.GetParentTask(task)
}

// Agenda collects the tasks due to start soon and every task still open
// for the user with the given login name.
func (s *PlannerService) Agenda(login string) (*Agenda, error) {
	user, err := s.users.GetUserByLoginName(login)
	if err != nil {
		return nil, err
	}

	dueForStart, err := s.tasks.GetUnstartedDueForStartForAssignedUser(user)
	if err != nil {
		return nil, err
	}
	active, err := s.tasks.GetActiveTasksForAssignedUser(user)
	if err != nil {
		return nil, err
	}

	return &Agenda{User: user, DueForStart: dueForStart, Active: active}, nil
}

// CompletedSince lists the tasks the user completed on or after since.
func (s *PlannerService) CompletedSince(login string, since time.Time) ([]*domain.Task, error) {
	user, err := s.users.GetUserByLoginName(login)
	if err != nil {
		return nil, err
	}
	return s.tasks.GetTasksCompletedByAssignedAfterDate(user, since)
}

// Diagnostics returns the repository messages of the most recent
// operations, user messages first.
func (s *PlannerService) Diagnostics() []string {
	return append(s.users.Errors(), s.tasks.Errors()...)
}
