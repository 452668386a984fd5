// Package validate collects request field errors the way the API reports
// them: individual Indonesian messages joined with ", ".
package validate

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type Errors struct {
	messages []string
}

func (e *Errors) Add(message string) {
	e.messages = append(e.messages, message)
}

func (e *Errors) Ok() bool {
	return len(e.messages) == 0
}

func (e *Errors) Message() string {
	return strings.Join(e.messages, ", ")
}

// Require adds message when value is empty.
func (e *Errors) Require(value, message string) {
	if strings.TrimSpace(value) == "" {
		e.Add(message)
	}
}

// MinLen adds message when value is shorter than min characters.
func (e *Errors) MinLen(value string, min int, message string) {
	if len([]rune(value)) < min {
		e.Add(message)
	}
}

// MaxLen adds message when value is longer than max characters.
func (e *Errors) MaxLen(value string, max int, message string) {
	if len([]rune(value)) > max {
		e.Add(message)
	}
}

// Email adds message when value is not a parseable address.
func (e *Errors) Email(value, message string) {
	if _, err := mail.ParseAddress(value); err != nil {
		e.Add(message)
	}
}

// UUID adds message when value is not a valid UUID.
func (e *Errors) UUID(value, message string) {
	if uuid.Validate(value) != nil {
		e.Add(message)
	}
}

// Slug adds message when value is not already in slug form
// (lowercase letters, digits, hyphens).
func (e *Errors) Slug(value, message string) {
	if !slug.IsSlug(value) {
		e.Add(message)
	}
}
