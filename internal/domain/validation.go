package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks input rejected before it is sent to the backend
var ErrValidation = errors.New("validation failed")

// ValidationError lists the fields that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func required(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Validate checks the fields the backend requires
func (in BookInput) Validate() error {
	if err := required("title", in.Title, "author", in.Author); err != nil {
		return err
	}
	if in.PublicationYear != nil && (*in.PublicationYear < 0 || *in.PublicationYear > 9999) {
		return &ValidationError{Fields: []string{"publication year"}}
	}
	return nil
}

// Validate checks the fields the backend requires.
// The password is only required when creating a user.
func (in UserInput) Validate(creating bool) error {
	fields := []string{"username", in.Username, "email", in.Email}
	if creating {
		fields = append(fields, "password", in.Password)
	}
	if err := required(fields...); err != nil {
		return err
	}
	if !strings.Contains(in.Email, "@") {
		return &ValidationError{Fields: []string{"a valid email"}}
	}
	return nil
}
