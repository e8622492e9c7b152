// Package validation runs ordered per-entity validator chains and collects
// field-level failures before anything is persisted.
package validation

import (
	"context"
	"strings"
)

// Reasons reported for failed field checks.
const (
	ReasonBlank        = "can't be blank"
	ReasonTaken        = "has already been taken"
	ReasonConfirmation = "doesn't match Password"
	ReasonInclusion    = "is not included in the list"
)

// FieldError describes a single failed check on a named field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Reason
}

// Errors aggregates every failed check of a validation run.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, ", ")
}

// Has reports whether some check failed for the given field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validator is a single named check. Check returns nil when the value is
// acceptable; a non-nil error aborts the run (infrastructure failure, not a
// validation outcome).
type Validator struct {
	Name  string
	Check func(ctx context.Context) (*FieldError, error)
}

// Run executes validators in order and aggregates every field error.
// It returns a non-nil Errors value only when at least one check failed.
func Run(ctx context.Context, validators ...Validator) (Errors, error) {
	var errs Errors
	for _, v := range validators {
		fe, err := v.Check(ctx)
		if err != nil {
			return nil, err
		}
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs, nil
}

// Required checks that a string field is not blank after trimming.
func Required(field, value string) Validator {
	return Validator{
		Name: field + " presence",
		Check: func(context.Context) (*FieldError, error) {
			if strings.TrimSpace(value) == "" {
				return &FieldError{Field: field, Reason: ReasonBlank}, nil
			}
			return nil, nil
		},
	}
}

// Unique checks a field against a store-backed lookup. taken reports whether
// another live record already holds the value.
func Unique(field string, taken func(ctx context.Context) (bool, error)) Validator {
	return Validator{
		Name: field + " uniqueness",
		Check: func(ctx context.Context) (*FieldError, error) {
			exists, err := taken(ctx)
			if err != nil {
				return nil, err
			}
			if exists {
				return &FieldError{Field: field, Reason: ReasonTaken}, nil
			}
			return nil, nil
		},
	}
}

// Confirmed checks that a confirmation field matches its source field.
func Confirmed(field, value, confirmation string) Validator {
	return Validator{
		Name: field + " confirmation",
		Check: func(context.Context) (*FieldError, error) {
			if value != confirmation {
				return &FieldError{Field: field, Reason: ReasonConfirmation}, nil
			}
			return nil, nil
		},
	}
}

// Included checks that a value belongs to a fixed set of allowed values.
func Included(field, value string, allowed []string) Validator {
	return Validator{
		Name: field + " inclusion",
		Check: func(context.Context) (*FieldError, error) {
			for _, a := range allowed {
				if value == a {
					return nil, nil
				}
			}
			return &FieldError{Field: field, Reason: ReasonInclusion}, nil
		},
	}
}
