// Package validation checks the shape of raw user payloads before they reach
// the service layer.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest accepted plaintext password.
const MinPasswordLength = 8

var requiredFields = []string{"name", "email", "password"}

var validate = validator.New()

// ValidateObjectID reports whether id is a well-formed store identifier.
func ValidateObjectID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidEmail reports whether email is syntactically valid.
func ValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// ValidateUserData validates a create payload. Checks run in a fixed order
// and the first failure is returned.
func ValidateUserData(payload map[string]any) error {
	if len(payload) == 0 {
		return errors.New("No data provided")
	}

	fields := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		raw, ok := payload[field]
		if !ok {
			return fmt.Errorf("Missing required field: %s", field)
		}
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("Field %s must be a string", field)
		}
		fields[field] = s
	}

	if !ValidEmail(fields["email"]) {
		return errors.New("Invalid email format")
	}
	if utf8.RuneCountInString(fields["password"]) < MinPasswordLength {
		return fmt.Errorf("Password must be at least %d characters long", MinPasswordLength)
	}
	if strings.TrimSpace(fields["name"]) == "" {
		return errors.New("Name cannot be empty")
	}
	return nil
}

// ValidateUserUpdate validates a partial update payload. Every field is
// optional and a null value counts as absent. Fields that are present must be
// well-formed; an empty password means "unchanged".
func ValidateUserUpdate(payload map[string]any) error {
	for _, field := range requiredFields {
		raw, ok := payload[field]
		if !ok || raw == nil {
			continue
		}
		if _, ok := raw.(string); !ok {
			return fmt.Errorf("Field %s must be a string", field)
		}
	}

	if email, ok := payload["email"].(string); ok && !ValidEmail(email) {
		return errors.New("Invalid email format")
	}
	if password, ok := payload["password"].(string); ok && password != "" && utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("Password must be at least %d characters long", MinPasswordLength)
	}
	if name, ok := payload["name"].(string); ok && strings.TrimSpace(name) == "" {
		return errors.New("Name cannot be empty")
	}
	return nil
}
