package models

import "strings"

// Role identifies what kind of account a session belongs to
type Role string

const (
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
	RoleGuest   Role = "guest"
)

// Level is the learning level a child is enrolled at
type Level string

const (
	LevelToddler   Level = "toddler"
	LevelPreschool Level = "preschool"
	LevelPreK      Level = "prek"
)

// Levels lists every level in enrollment order
var Levels = []Level{LevelToddler, LevelPreschool, LevelPreK}

// DefaultAge returns the age a guest at this level is assumed to be
func (l Level) DefaultAge() int {
	switch l {
	case LevelToddler:
		return 2
	case LevelPreschool:
		return 3
	default:
		return 4
	}
}

// Label returns the level with its first letter capitalized
func (l Level) Label() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// ParseLevel validates a level name
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// User is the account record persisted under the nurseryUsers key.
// Password holds a bcrypt hash for registered accounts.
type User struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
	ChildName  string `json:"childName"`
	ChildAge   int    `json:"childAge"`
	ChildLevel Level  `json:"childLevel"`
	Role       Role   `json:"role"`
}

// IsGuest reports whether the user is an ephemeral guest
func (u *User) IsGuest() bool {
	return u == nil || u.Role == RoleGuest
}

// Public returns a copy of the user without credentials
func (u User) Public() User {
	u.Password = ""
	return u
}
