package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"task-planner/internal/validation"
)

// UserPreferences controls how a user's schedule is laid out.
type UserPreferences struct {
	StartTime                      string
	EndTime                        string
	IncludePriorityInSchedule      bool
	IncludeMinorPriorityInSchedule bool
	UseLettersForMajorPriority     bool
	SeparatePriorityWithDot        bool
}

// DefaultUserPreferences returns the preferences every new user starts with.
func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		StartTime:                      "8:30 AM",
		EndTime:                        "5:00 PM",
		IncludePriorityInSchedule:      true,
		IncludeMinorPriorityInSchedule: true,
		UseLettersForMajorPriority:     true,
		SeparatePriorityWithDot:        false,
	}
}

// User is a person who creates and is assigned tasks.
type User struct {
	modified bool

	id            int64
	lastName      string
	firstName     string
	middleInitial string
	email         string
	loginName     string
	password      string
	preferences   UserPreferences
}

// NewUser creates an empty, unmodified user with default preferences.
func NewUser() *User {
	return &User{preferences: DefaultUserPreferences()}
}

// NewUserWithName creates a user from its name parts. A user built with
// id 0 is new and therefore modified; a nonzero id describes a stored user.
func NewUserWithName(lastName, firstName, middleInitial, email string, id int64) *User {
	u := NewUser()
	u.lastName = lastName
	u.firstName = firstName
	u.middleInitial = middleInitial
	u.email = email
	u.id = id
	u.modified = id == 0
	return u
}

func (u *User) ID() int64 { return u.id }
func (u *User) LastName() string { return u.lastName }
func (u *User) FirstName() string { return u.firstName }
func (u *User) MiddleInitial() string { return u.middleInitial }
func (u *User) Email() string { return u.email }
func (u *User) LoginName() string { return u.loginName }
func (u *User) Password() string { return u.password }
func (u *User) Preferences() UserPreferences { return u.preferences }
func (u *User) IsModified() bool { return u.modified }
func (u *User) IsInDatabase() bool { return u.id > 0 }
func (u *User) ClearModified() { u.modified = false }

// AutoGenerateLoginAndPassword derives both the login name and the initial
// password from the user's name when neither has been set.
func (u *User) AutoGenerateLoginAndPassword() {
	if u.loginName != "" || u.password != "" {
		return
	}

	login := u.lastName + u.firstName
	if r, size := utf8.DecodeRuneInString(u.middleInitial); size > 0 {
		login += string(r)
	}

	u.SetLoginName(login)
	u.SetPassword(login)
}

func (u *User) SetID(id int64) {
	u.modified = true
	u.id = id
}

func (u *User) SetLastName(name string) {
	u.modified = true
	u.lastName = name
}

func (u *User) SetFirstName(name string) {
	u.modified = true
	u.firstName = name
}

func (u *User) SetMiddleInitial(initial string) {
	u.modified = true
	u.middleInitial = initial
}

func (u *User) SetEmail(email string) {
	u.modified = true
	u.email = email
}

func (u *User) SetLoginName(login string) {
	u.modified = true
	u.loginName = login
}

func (u *User) SetPassword(password string) {
	u.modified = true
	u.password = password
}

func (u *User) SetStartTime(startTime string) {
	u.modified = true
	u.preferences.StartTime = startTime
}

func (u *User) SetEndTime(endTime string) {
	u.modified = true
	u.preferences.EndTime = endTime
}

func (u *User) SetPriorityInSchedule(include bool) {
	u.modified = true
	u.preferences.IncludePriorityInSchedule = include
}

func (u *User) SetMinorPriorityInSchedule(include bool) {
	u.modified = true
	u.preferences.IncludeMinorPriorityInSchedule = include
}

func (u *User) SetUsingLettersForMajorPriority(useLetters bool) {
	u.modified = true
	u.preferences.UseLettersForMajorPriority = useLetters
}

func (u *User) SetSeparatingPriorityWithDot(separate bool) {
	u.modified = true
	u.preferences.SeparatePriorityWithDot = separate
}

type userRequiredValues struct {
	LastName  string `validate:"required"`
	FirstName string `validate:"required"`
	LoginName string `validate:"required"`
	Password  string `validate:"required"`
	Email     string `validate:"omitempty,email"`
}

// Validate checks the fields an insert cannot do without.
func (u *User) Validate() error {
	ve := validation.Struct(userRequiredValues{
		LastName:  u.lastName,
		FirstName: u.firstName,
		LoginName: u.loginName,
		Password:  u.password,
		Email:     u.email,
	})
	if ve == nil {
		return nil
	}
	return ve
}

// HasRequiredValues reports whether Validate passes.
func (u *User) HasRequiredValues() bool {
	return u.Validate() == nil
}

// Equal compares the identity subset: id, login name and the three name
// parts. Preferences and password are not compared.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.id == other.id &&
		u.loginName == other.loginName &&
		u.lastName == other.lastName &&
		u.firstName == other.firstName &&
		u.middleInitial == other.middleInitial
}

func (u *User) String() string {
	var b strings.Builder
	line := func(name string, value interface{}) {
		fmt.Fprintf(&b, "\t%s: %v\n", name, value)
	}

	line("User ID", u.id)
	line("Last Name", u.lastName)
	line("First Name", u.firstName)
	line("Middle Initial", u.middleInitial)
	line("Email", u.email)
	line("Login Name", u.loginName)

	return b.String()
}
