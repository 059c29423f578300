package core

import "fmt"

// ErrorKind classifies every failure the pipeline can produce.
// Connection errors are fatal to the whole run; fetch and decode
// errors are isolated to one query; render errors are isolated to one
// query's section; config errors surface before the run starts.
type ErrorKind int

const (
	ErrConnection ErrorKind = iota
	ErrFetch
	ErrDecode
	ErrRender
	ErrConfig
)

// Error carries the structured context of a failure. The display
// string is only assembled when the error reaches a presentation
// boundary.
type Error struct {
	Kind    ErrorKind
	Message string

	// Field and Row locate decode failures; Row is zero-based.
	Field string
	Row   int

	Err error
}

func (e *Error) Error() string {
	if e.Kind == ErrDecode {
		return fmt.Sprintf("Column %s row %d error: %v", e.Field, e.Row, e.Err)
	}

	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ConnectionErr(message string, err error) *Error {
	return &Error{Kind: ErrConnection, Message: message, Err: err}
}

func FetchErr(message string, err error) *Error {
	return &Error{Kind: ErrFetch, Message: message, Err: err}
}

func DecodeErr(field string, row int, err error) *Error {
	return &Error{Kind: ErrDecode, Field: field, Row: row, Err: err}
}

func RenderErr(message string) *Error {
	return &Error{Kind: ErrRender, Message: message}
}

func ConfigErr(message string, err error) *Error {
	return &Error{Kind: ErrConfig, Message: message, Err: err}
}
