// Package errs defines the structured error taxonomy shared by the groups
// packages.
package errs

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindType: raw input is not a supported primitive, or a container was
	// supplied where a scalar was required.
	KindType Kind = "Type"
	// KindNested: a container was asked to hold another container.
	KindNested Kind = "NestedContainer"
	// KindUnknownAlias: a type-expression token resolves to no known kind.
	KindUnknownAlias Kind = "UnknownAlias"
	// KindCollision: the registry is internally inconsistent.
	KindCollision Kind = "Collision"
	KindParse     Kind = "Parse"
	KindConfig    Kind = "Config"
	KindInternal  Kind = "Internal"
)

// Error is the structured error type.
//
// RuleID is a stable identifier (e.g. GRP-TYPE-001, GRP-REG-003) naming the
// violated rule. Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func New(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func Wrap(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return New(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
