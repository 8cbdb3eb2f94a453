package cfn

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateResourceName   = errors.New("duplicate resource name")
	ErrUnresolvedReference     = errors.New("unresolved reference")
	ErrMissingConditionalField = errors.New("missing conditional field")
)

// DuplicateNameError reports a name used twice within the same namespace.
type DuplicateNameError struct {
	Namespace string
	Name      string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: %s %q is defined more than once", ErrDuplicateResourceName, e.Namespace, e.Name)
}

func (e *DuplicateNameError) Unwrap() error {
	return ErrDuplicateResourceName
}

// UnresolvedReferenceError reports a reference from one named item to a name that does not exist.
type UnresolvedReferenceError struct {
	FromKind string
	From     string
	ToKind   string
	To       string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %q references unknown %s %q", ErrUnresolvedReference, e.FromKind, e.From, e.ToKind, e.To)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

// MissingFieldError reports a field required by the branch taken for Owner.
type MissingFieldError struct {
	Owner  string
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s requires %s when %s", ErrMissingConditionalField, e.Owner, e.Field, e.Reason)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingConditionalField
}

// ConfigurationError aggregates every problem found during one assembly pass.
type ConfigurationError struct {
	Stack string
	Errs  []error
}

func (e *ConfigurationError) Error() string {
	messages := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		messages = append(messages, "  - "+err.Error())
	}
	return fmt.Sprintf("invalid configuration for stack %q (%d problems):\n%s", e.Stack, len(e.Errs), strings.Join(messages, "\n"))
}

func (e *ConfigurationError) Unwrap() []error {
	return e.Errs
}
