// Package validation turns raw user input into a normalized entities.Book.
//
// Checks are plain predicates; every failing field is reported at once in a
// single *ValidationError and no partially-built book is ever returned.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Input is the raw book payload as collected from the user.
type Input struct {
	Title    string
	Pages    int
	Read     bool
	Category string
}

// FieldError describes one rejected field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "invalid book: " + strings.Join(parts, "; ")
}

// Has reports whether the named field is among the failures.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validator checks book payloads and logs the rejected ones.
type Validator struct {
	log *zap.Logger
}

func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{log: logger}
}

// Validate trims and checks the payload, then returns the book with its
// title in title case and its category upper-cased.
func (v *Validator) Validate(in Input) (entities.Book, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)

	var fields []FieldError
	if title == "" {
		fields = append(fields, FieldError{Field: "title", Reason: "must not be empty"})
	}
	if in.Pages <= 0 {
		fields = append(fields, FieldError{Field: "pages", Reason: "must be greater than 0"})
	}
	if category == "" {
		fields = append(fields, FieldError{Field: "category", Reason: "must not be empty"})
	}

	if len(fields) > 0 {
		err := &ValidationError{Fields: fields}
		v.log.Error("Validation failed",
			zap.String("title", in.Title),
			zap.Int("pages", in.Pages),
			zap.Bool("read", in.Read),
			zap.String("category", in.Category),
			zap.Error(err),
		)
		return entities.Book{}, err
	}

	return entities.Book{
		Title:    TitleCase(title),
		Pages:    in.Pages,
		Read:     in.Read,
		Category: cases.Upper(language.Und).String(category),
	}, nil
}

// ParsePages converts the raw pages answer into an integer.
func (v *Validator) ParsePages(raw string) (int, error) {
	pages, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		verr := &ValidationError{Fields: []FieldError{{Field: "pages", Reason: "must be a whole number"}}}
		v.log.Error("Validation failed", zap.String("pages", raw), zap.Error(verr))
		return 0, verr
	}
	return pages, nil
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
