package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
	MaxEmailLength    = 254
	MaxNameLength     = 100
	MaxMessageLength  = 5000
	MinChildAge       = 1
	MaxChildAge       = 12
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nameRegexp  = regexp.MustCompile(`^\p{L}[\p{L} .'\-]*$`)
)

// ValidationError reports a problem with a single form field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks that an email address is well formed
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > MaxEmailLength {
		return &ValidationError{Field: "email", Message: fmt.Sprintf("email must be at most %d characters", MaxEmailLength)}
	}
	if !emailRegexp.MatchString(email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks a person's display name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if n < 2 {
		return &ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if n > MaxNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxNameLength)}
	}
	if !nameRegexp.MatchString(name) {
		return &ValidationError{Field: "name", Message: "name contains invalid characters"}
	}
	return nil
}

// ValidatePassword checks the password length. The upper bound is in bytes,
// the most bcrypt will hash.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	}
	if len(password) > MaxPasswordLength {
		return &ValidationError{Field: "password", Message: fmt.Sprintf("password must be at most %d bytes", MaxPasswordLength)}
	}
	return nil
}

// ValidateChildAge parses the age field of the registration form
func ValidateChildAge(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, &ValidationError{Field: "age", Message: "age is required"}
	}
	age, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{Field: "age", Message: "age must be a number"}
	}
	if age < MinChildAge || age > MaxChildAge {
		return 0, &ValidationError{Field: "age", Message: fmt.Sprintf("age must be between %d and %d", MinChildAge, MaxChildAge)}
	}
	return age, nil
}

// MissingFields returns the names of required fields left blank, in the
// order given
func MissingFields(fields map[string]string, required ...string) []string {
	var missing []string
	for _, name := range required {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// ValidateMessage checks the free-text body of the contact form
func ValidateMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return &ValidationError{Field: "message", Message: "message is required"}
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return &ValidationError{Field: "message", Message: fmt.Sprintf("message must be at most %d characters", MaxMessageLength)}
	}
	return nil
}
