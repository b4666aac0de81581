// Package zkperr defines the error-kind umbrella shared across the ZKP core.
package zkperr

import "fmt"

// Kind discriminates the category of a ZKPError.
type Kind string

const (
	KindInvalidInput       Kind = "InvalidInput"
	KindSyntaxError        Kind = "SyntaxError"
	KindNotDerivable       Kind = "NotDerivable"
	KindUnknownBackend     Kind = "UnknownBackend"
	KindBackendDisabled    Kind = "BackendDisabled"
	KindBinaryNotAvailable Kind = "BinaryNotAvailable"
	KindTimeout            Kind = "Timeout"
	KindWireFormatError    Kind = "WireFormatError"
	KindMalformedProof     Kind = "MalformedProof"
	KindStructured         Kind = "Structured"
)

// Error is the umbrella ZKP error type. Param names the triggering
// parameter when known; Code carries a backend-reported structured
// code (Kind == KindStructured).
type Error struct {
	Kind    Kind
	Param   string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == KindStructured && e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	if e.Param != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Param, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a Kind-tagged error with an optional triggering parameter name.
func New(kind Kind, param, message string) *Error {
	return &Error{Kind: kind, Param: param, Message: message}
}

// Wrap attaches a Kind to an underlying error, preserving it for errors.Is/As.
func Wrap(kind Kind, param string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Param: param, Message: err.Error(), Err: err}
}

// Structured builds the Groth16 error-envelope-derived error: "[code] message".
func Structured(code, message string) *Error {
	return &Error{Kind: KindStructured, Code: code, Message: message}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}
