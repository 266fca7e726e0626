package service

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"littlestars/internal/models"
	"littlestars/internal/notify"
	"littlestars/internal/security"
	"littlestars/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidLevel       = errors.New("invalid level")
)

const demoPassword = "demo123"

// demoUsers are built in and can always log in with demoPassword
var demoUsers = map[string]models.User{
	"parent@demo.com": {
		Name:       "Emma Johnson",
		Email:      "parent@demo.com",
		ChildName:  "Lily Johnson",
		ChildAge:   3,
		ChildLevel: models.LevelPreschool,
		Role:       models.RoleParent,
	},
	"teacher@demo.com": {
		Name:       "Ms. Sarah Wilson",
		Email:      "teacher@demo.com",
		ChildName:  "Class Monitor",
		ChildAge:   4,
		ChildLevel: models.LevelPreK,
		Role:       models.RoleTeacher,
	},
}

// DemoAccounts lists the demo logins in a stable order
func DemoAccounts() []models.User {
	return []models.User{demoUsers["parent@demo.com"], demoUsers["teacher@demo.com"]}
}

// gameCloser ends a running game so its progress is recorded
type gameCloser interface {
	CloseGame(v *Visitor)
}

// RegisterInput is the registration form
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Age      string
	Level    string
}

// AuthService handles the demo login flow. It is not a security boundary.
type AuthService struct {
	store KeyValueStore
	games gameCloser
}

// NewAuthService creates a new auth service
func NewAuthService(store KeyValueStore, games gameCloser) *AuthService {
	return &AuthService{store: store, games: games}
}

// Login checks the demo accounts first and then the registered ones
func (s *AuthService) Login(v *Visitor, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	if demo, ok := demoUsers[email]; ok {
		if subtle.ConstantTimeCompare([]byte(password), []byte(demoPassword)) == 1 {
			return s.signIn(v, demo, "Welcome back!")
		}
	}

	users, err := s.loadUsers(v.ID)
	if err != nil {
		return nil, err
	}
	if stored, ok := users[email]; ok && security.CheckPassword(stored.Password, password) {
		return s.signIn(v, stored, "Welcome back!")
	}

	log.Printf("Failed login attempt for %s", email)
	v.Notifier.Notify("Invalid email or password. Please try again.", notify.Error)
	return nil, ErrInvalidCredentials
}

// Register stores a new parent account and logs it in
func (s *AuthService) Register(v *Visitor, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	age, level, err := validateRegistration(in)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			v.Notifier.Notify(strings.ToUpper(verr.Message[:1])+verr.Message[1:]+".", notify.Error)
		}
		return nil, err
	}

	users, err := s.loadUsers(v.ID)
	if err != nil {
		return nil, err
	}
	if _, taken := users[in.Email]; taken {
		v.Notifier.Notify("An account with this email already exists.", notify.Error)
		return nil, ErrEmailTaken
	}
	if _, demo := demoUsers[in.Email]; demo {
		v.Notifier.Notify("An account with this email already exists.", notify.Error)
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   hash,
		ChildName:  in.Name,
		ChildAge:   age,
		ChildLevel: level,
		Role:       models.RoleParent,
	}
	users[in.Email] = user
	if err := s.saveUsers(v.ID, users); err != nil {
		return nil, err
	}

	log.Printf("Registered new account %s", in.Email)
	return s.signIn(v, user, "Account created successfully! Welcome to Little Stars!")
}

func validateRegistration(in RegisterInput) (int, models.Level, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return 0, "", err
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return 0, "", err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return 0, "", err
	}
	age, err := validation.ValidateChildAge(in.Age)
	if err != nil {
		return 0, "", err
	}
	level, ok := models.ParseLevel(in.Level)
	if !ok {
		return 0, "", &validation.ValidationError{Field: "level", Message: "please choose a level"}
	}
	return age, level, nil
}

// SetGuest switches to an ephemeral guest at the given level. Nothing about
// the guest is stored.
func (s *AuthService) SetGuest(v *Visitor, levelName string) (*models.User, error) {
	level, ok := models.ParseLevel(levelName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, levelName)
	}

	s.closeGame(v)
	guest := &models.User{
		Name:       "Guest User",
		ChildName:  "Little Star",
		ChildAge:   level.DefaultAge(),
		ChildLevel: level,
		Role:       models.RoleGuest,
	}
	v.User = guest
	if err := s.store.Delete(v.ID, models.CurrentUserKey); err != nil {
		log.Printf("Failed to clear session marker: %v", err)
	}

	v.Notifier.Notify(fmt.Sprintf("Welcome! You're now browsing as a %s level user.", level), notify.Success)
	return guest, nil
}

// Logout ends the session. Stored progress is kept.
func (s *AuthService) Logout(v *Visitor) error {
	s.closeGame(v)
	v.User = nil
	if err := s.store.Delete(v.ID, models.CurrentUserKey); err != nil {
		return fmt.Errorf("failed to clear session marker: %w", err)
	}
	v.Notifier.Notify("You have been logged out successfully.", notify.Success)
	return nil
}

// Restore loads the persisted session marker the first time a visitor is
// seen. An unreadable marker counts as logged out.
func (s *AuthService) Restore(v *Visitor) {
	if v.restored {
		return
	}
	v.restored = true

	raw, ok, err := s.store.Get(v.ID, models.CurrentUserKey)
	if err != nil {
		log.Printf("Failed to load session marker: %v", err)
		return
	}
	if !ok {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.Email == "" || user.IsGuest() {
		log.Printf("Warning: ignoring unreadable session marker for visitor %s", v.ID)
		return
	}
	v.User = &user
}

func (s *AuthService) signIn(v *Visitor, user models.User, greeting string) (*models.User, error) {
	s.closeGame(v)

	public := user.Public()
	data, err := json.Marshal(public)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session marker: %w", err)
	}
	if err := s.store.Set(v.ID, models.CurrentUserKey, string(data)); err != nil {
		return nil, fmt.Errorf("failed to save session marker: %w", err)
	}

	v.User = &public
	v.Notifier.Notify(greeting, notify.Success)
	return v.User, nil
}

func (s *AuthService) closeGame(v *Visitor) {
	if s.games != nil {
		s.games.CloseGame(v)
	}
}

// loadUsers reads the registered accounts. Unreadable data counts as none.
func (s *AuthService) loadUsers(namespace string) (map[string]models.User, error) {
	users := make(map[string]models.User)

	raw, ok, err := s.store.Get(namespace, models.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if !ok {
		return users, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		log.Printf("Warning: discarding unreadable user table: %v", err)
		return make(map[string]models.User), nil
	}
	return users, nil
}

func (s *AuthService) saveUsers(namespace string, users map[string]models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := s.store.Set(namespace, models.UsersKey, string(data)); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}
