// Package sqlerr declares the error taxonomy used across the planner,
// binder, optimizer and executor. Each kind is a gopkg.in/src-d/go-errors.v1
// Kind; call sites build concrete errors with Kind.New(args...) and classify
// failures with Kind.Is(err) rather than string matching.
package sqlerr

import errors "gopkg.in/src-d/go-errors.v1"

// Codebase errors.
var (
	ErrMissingDependency = errors.NewKind("missing dependency: %s")
	ErrUnmetRequirement  = errors.NewKind("unmet requirement: %s")
)

// Database errors.
var (
	ErrIncompleteImplementation = errors.NewKind("incomplete implementation: %s")
	ErrInvalidConfiguration     = errors.NewKind("invalid configuration: %s")
	ErrInvalidInternalState     = errors.NewKind("invalid internal state: %s")
	ErrNotSupported             = errors.NewKind("not supported: %s")
	ErrUnsupportedFileType      = errors.NewKind("unsupported file type: %s")
	ErrUnsupportedType          = errors.NewKind("unsupported type: %s")
)

// Programming errors.
var (
	ErrInvalidCursorState = errors.NewKind("invalid cursor state: %s")
	ErrMissingSQLStatement = errors.NewKind("missing sql statement")
	ErrParameterError     = errors.NewKind("parameter error: %s")
)

// Data errors.
var (
	ErrEmptyDataset    = errors.NewKind("empty dataset: %s")
	ErrEmptyResultSet  = errors.NewKind("empty result set")
)

// Security errors.
var (
	ErrPermissions = errors.NewKind("permission denied: %s")
)

// SQL errors. Messages accept an optional trailing suggestion; the binder
// passes the ", maybe you mean X?" suffix internal/similartext.Find renders.
var (
	ErrAmbiguousDataset          = errors.NewKind("ambiguous dataset reference '%s'%s")
	ErrAmbiguousIdentifier       = errors.NewKind("ambiguous identifier '%s'%s")
	ErrColumnNotFound            = errors.NewKind("column '%s' not found%s")
	ErrDatasetNotFound           = errors.NewKind("dataset '%s' not found%s")
	ErrFunctionNotFound          = errors.NewKind("function '%s' not found%s")
	ErrIncompatibleTypes         = errors.NewKind("incompatible types: %s and %s")
	ErrIncorrectType             = errors.NewKind("incorrect type for %s: %s")
	ErrInvalidFunctionParameter  = errors.NewKind("invalid parameter for function '%s': %s")
	ErrInvalidTemporalRangeFilter = errors.NewKind("invalid temporal range: %s")
	ErrUnexpectedDatasetReference = errors.NewKind("unexpected dataset reference '%s'")
	ErrUnnamedColumn             = errors.NewKind("unnamed column: %s")
	ErrUnnamedSubquery           = errors.NewKind("subquery requires an alias")
	ErrUnsupportedSyntax         = errors.NewKind("unsupported syntax: %s")
	ErrVariableNotFound          = errors.NewKind("variable '%s' not found%s")
)

// WithSuggestion renders an alternative ", did you mean 'X'?" suffix for
// the errors above; the binder's lookups use internal/similartext.Find
// instead.
func WithSuggestion(suggestion string) string {
	if suggestion == "" {
		return ""
	}
	return ", did you mean '" + suggestion + "'?"
}
