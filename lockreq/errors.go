package lockreq

import (
	"errors"
	"strings"
)

// SyntaxError is a malformed directive entry. Offset is a byte offset
// into the directive's argument text, so callers can point a
// diagnostic at the offending token.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string { return e.Msg }

// Errors joins any non-nil errors into one. A single error is returned
// as-is; several become one error that unwraps to all of them.
func Errors(errs ...error) error {
	nonnil := errs[:0]
	for _, err := range errs {
		if err != nil {
			nonnil = append(nonnil, err)
		}
	}
	switch len(nonnil) {
	case 0:
		return nil
	case 1:
		return nonnil[0]
	}
	return multiError(nonnil)
}

type multiError []error

func (e multiError) Error() string {
	b := strings.Builder{}
	for i, err := range e {
		if i > 0 {
			b.WriteRune('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e multiError) Unwrap() []error { return e }

func (e multiError) Is(err error) bool {
	for _, er := range e {
		if errors.Is(er, err) {
			return true
		}
	}
	return false
}

func (e multiError) As(target interface{}) bool {
	for _, er := range e {
		if errors.As(er, target) {
			return true
		}
	}
	return false
}

// SyntaxErrors flattens err into the syntax errors it carries, in
// input order.
func SyntaxErrors(err error) []*SyntaxError {
	var out []*SyntaxError
	switch err := err.(type) {
	case *SyntaxError:
		out = append(out, err)
	case interface{ Unwrap() []error }:
		for _, e := range err.Unwrap() {
			out = append(out, SyntaxErrors(e)...)
		}
	}
	return out
}
