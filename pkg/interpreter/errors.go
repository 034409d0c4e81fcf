package interpreter

import (
	"errors"
	"fmt"

	"minicode/interpreter-go/pkg/capability"
)

type ErrorKind string

const (
	KindUndefinedVariable  ErrorKind = "UndefinedVariableError"
	KindUndefinedFunction  ErrorKind = "UndefinedFunctionError"
	KindArityMismatch      ErrorKind = "ArityMismatchError"
	KindDivisionByZero     ErrorKind = "DivisionByZeroError"
	KindTypeMismatch       ErrorKind = "TypeMismatchError"
	KindPolynomialParse    ErrorKind = "PolynomialParseError"
	KindMissingOperand     ErrorKind = "MissingOperandError"
	KindAdapterUnavailable ErrorKind = "AdapterUnavailableWarning"
	KindRecursionLimit     ErrorKind = "RecursionLimitError"
	KindInternal           ErrorKind = "InternalError"
)

// Sentinels for errors.Is; every *RuntimeError matches the one for its kind.
var (
	ErrUndefinedVariable  = errors.New("undefined variable")
	ErrUndefinedFunction  = errors.New("undefined function")
	ErrArityMismatch      = errors.New("arity mismatch")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrPolynomialParse    = errors.New("polynomial parse error")
	ErrMissingOperand     = errors.New("missing operand")
	ErrAdapterUnavailable = errors.New("adapter unavailable")
	ErrRecursionLimit     = errors.New("recursion limit exceeded")
	ErrInternal           = errors.New("internal error")
)

var kindSentinels = map[ErrorKind]error{
	KindUndefinedVariable:  ErrUndefinedVariable,
	KindUndefinedFunction:  ErrUndefinedFunction,
	KindArityMismatch:      ErrArityMismatch,
	KindDivisionByZero:     ErrDivisionByZero,
	KindTypeMismatch:       ErrTypeMismatch,
	KindPolynomialParse:    ErrPolynomialParse,
	KindMissingOperand:     ErrMissingOperand,
	KindAdapterUnavailable: ErrAdapterUnavailable,
	KindRecursionLimit:     ErrRecursionLimit,
	KindInternal:           ErrInternal,
}

// RuntimeError is the single error type produced by evaluation.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func (e *RuntimeError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// Severity is a warning for degraded capabilities and an error otherwise.
func (e *RuntimeError) Severity() capability.Severity {
	if e.Kind == KindAdapterUnavailable {
		return capability.SeverityWarning
	}
	return capability.SeverityError
}

func newRuntimeError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newTypeMismatch(format string, args ...any) *RuntimeError {
	return newRuntimeError(KindTypeMismatch, format, args...)
}

func newDivisionByZeroError() *RuntimeError {
	return &RuntimeError{Kind: KindDivisionByZero, Message: "division by zero"}
}
