package timesheet

import "fmt"

// StructuralError reports that the document's layout does not match the
// timesheet contract: a missing anchor row or a missing required column.
type StructuralError struct {
	msg string
}

func (e *StructuralError) Error() string { return e.msg }

func structuralErrorf(format string, args ...interface{}) *StructuralError {
	return &StructuralError{msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports that a cell was found where expected but its value
// could not be coerced to the required type.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IOError reports that the document itself could not be read.
type IOError struct {
	msg string
	err error
}

func (e *IOError) Error() string { return e.msg }

func (e *IOError) Unwrap() error { return e.err }

func ioError(err error, format string, args ...interface{}) *IOError {
	return &IOError{msg: fmt.Sprintf(format, args...) + ": " + err.Error(), err: err}
}
