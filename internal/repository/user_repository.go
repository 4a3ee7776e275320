package repository

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
)

var (
	insertUserQuery = UserColumns.Insert("UserID")

	selectUserByIDQuery       = UserColumns.Select("WHERE UserID = ?")
	selectUserByFullNameQuery = UserColumns.Select("WHERE LastName = ? AND FirstName = ? AND MiddleInitial = ?")
	selectUserByEmailQuery    = UserColumns.Select("WHERE EmailAddress = ?")
	selectUserByLoginQuery    = UserColumns.Select("WHERE LoginName = ?")
	selectAllUsersQuery       = UserColumns.Select("ORDER BY UserID")
)

// UserRepository inserts and looks up users. Passwords are stored as hashes
// produced by the configured PasswordHasher. A UserRepository serves one
// caller at a time.
type UserRepository struct {
	core
	hasher PasswordHasher
}

// NewUserRepository creates a user repository running its queries through executor.
func NewUserRepository(executor Executor, hasher PasswordHasher, logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		core:   newCore("UserRepository", executor, logger),
		hasher: hasher,
	}
}

// Insert stores a new user and returns the generated id. Unmodified or
// incomplete users are rejected without touching the database. The user's
// in-memory password is left as given.
func (r *UserRepository) Insert(user *domain.User) (int64, error) {
	r.prepare()

	if !user.IsModified() {
		return 0, r.reject("User not modified!", nil)
	}
	if err := user.Validate(); err != nil {
		return 0, r.reject("User is missing required values!", err)
	}

	hashed, err := r.hasher.Hash(user.Password())
	if err != nil {
		return 0, r.fail("Insert", []interface{}{user.LoginName()}, err)
	}

	results, err := r.executor.Execute(func(conn Conn) (*Results, error) {
		return insertUser(conn, user, hashed)
	})
	if err != nil {
		return 0, r.fail("Insert", []interface{}{user.LoginName()}, err)
	}
	return results.LastInsertID, nil
}

func insertUser(conn Conn, user *domain.User, hashedPassword string) (*Results, error) {
	prefs := user.Preferences()

	userID, err := conn.Insert(insertUserQuery, "UserID",
		user.LastName(),
		user.FirstName(),
		user.MiddleInitial(),
		user.Email(),
		user.LoginName(),
		hashedPassword,
		prefs.StartTime,
		prefs.EndTime,
		FormatBoolForDB(prefs.IncludePriorityInSchedule),
		FormatBoolForDB(prefs.IncludeMinorPriorityInSchedule),
		FormatBoolForDB(prefs.UseLettersForMajorPriority),
		FormatBoolForDB(prefs.SeparatePriorityWithDot),
	)
	if err != nil {
		return nil, err
	}
	return &Results{LastInsertID: userID, RowsAffected: 1}, nil
}

// GetUserByUserID returns the user stored under userID.
func (r *UserRepository) GetUserByUserID(userID int64) (*domain.User, error) {
	r.prepare()
	r.params.Stage(userID)

	user, err := querySingle(&r.core, r.selectUserByID, scanUserRow, userNames, strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, r.fail("GetUserByUserID", []interface{}{userID}, err)
	}
	return user, nil
}

func (r *UserRepository) selectUserByID(conn Conn) (*Results, error) {
	return conn.Query(selectUserByIDQuery, Arg[int64](&r.params, 0))
}

// GetUserByFullName returns the user with exactly these name parts.
func (r *UserRepository) GetUserByFullName(lastName, firstName, middleInitial string) (*domain.User, error) {
	r.prepare()
	r.params.Stage(lastName, firstName, middleInitial)

	fullName := strings.Join([]string{lastName, firstName, middleInitial}, " ")
	user, err := querySingle(&r.core, r.selectUserByFullName, scanUserRow, userNames, fullName)
	if err != nil {
		return nil, r.fail("GetUserByFullName", []interface{}{lastName, firstName, middleInitial}, err)
	}
	return user, nil
}

func (r *UserRepository) selectUserByFullName(conn Conn) (*Results, error) {
	return conn.Query(selectUserByFullNameQuery,
		Arg[string](&r.params, 0),
		Arg[string](&r.params, 1),
		Arg[string](&r.params, 2),
	)
}

// GetUserByEmail returns the user registered with email.
func (r *UserRepository) GetUserByEmail(email string) (*domain.User, error) {
	r.prepare()
	r.params.Stage(email)

	user, err := querySingle(&r.core, r.selectUserByEmail, scanUserRow, userNames, email)
	if err != nil {
		return nil, r.fail("GetUserByEmail", []interface{}{email}, err)
	}
	return user, nil
}

func (r *UserRepository) selectUserByEmail(conn Conn) (*Results, error) {
	return conn.Query(selectUserByEmailQuery, Arg[string](&r.params, 0))
}

// GetUserByLoginName returns the user with login name login.
func (r *UserRepository) GetUserByLoginName(login string) (*domain.User, error) {
	r.prepare()
	r.params.Stage(login)

	user, err := querySingle(&r.core, r.selectUserByLogin, scanUserRow, userNames, login)
	if err != nil {
		return nil, r.fail("GetUserByLoginName", []interface{}{login}, err)
	}
	return user, nil
}

func (r *UserRepository) selectUserByLogin(conn Conn) (*Results, error) {
	return conn.Query(selectUserByLoginQuery, Arg[string](&r.params, 0))
}

// GetUserByLoginAndPassword returns the user with login name login whose
// stored hash matches password. A wrong password reads as not found.
func (r *UserRepository) GetUserByLoginAndPassword(login, password string) (*domain.User, error) {
	r.prepare()
	r.params.Stage(login)

	user, err := querySingle(&r.core, r.selectUserByLogin, scanUserRow, userNames, login)
	if err != nil {
		return nil, r.fail("GetUserByLoginAndPassword", []interface{}{login}, err)
	}

	if !r.hasher.Matches(user.Password(), password) {
		r.errs.Append(userNames.notFound)
		return nil, errors.NewNotFoundError(userNames.resource, login).
			WithContext("operation", "GetUserByLoginAndPassword")
	}
	return user, nil
}

// GetAllUsers lists every user in id order.
func (r *UserRepository) GetAllUsers() ([]*domain.User, error) {
	r.prepare()

	users, err := queryMultiple(&r.core, selectAllUsers, scanUserRow, userNames)
	if err != nil {
		return nil, r.fail("GetAllUsers", nil, err)
	}
	return users, nil
}

func selectAllUsers(conn Conn) (*Results, error) {
	return conn.Query(selectAllUsersQuery)
}

func scanUserRow(row Row) (*domain.User, error) {
	return ScanUser(NewRowReader(row))
}
