package validate

import (
	"fmt"
	"regexp"

	"github.com/dreamshare/dreams-backend/internal/model"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minDescriptionLen = 5
	minPasswordLen    = 6
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, model.ErrValidation)...)
}

func NonEmpty(field, v string) error {
	if v == "" {
		return invalid("%s is required", field)
	}
	return nil
}

func Email(v string) error {
	if v == "" {
		return invalid("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return invalid("invalid email")
	}
	return nil
}

// Signup validates input for creating a new account.
func Signup(name, email, password string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return invalid("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func Login(email, password string) error {
	if err := Email(email); err != nil {
		return err
	}
	return NonEmpty("password", password)
}

// Dream validates the mutable dream fields, shared by create and update.
func Dream(title, description string) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	if len(description) < minDescriptionLen {
		return invalid("description must be at least %d characters", minDescriptionLen)
	}
	return nil
}
