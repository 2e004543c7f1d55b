// Package errors provides the tabql error taxonomy and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is against wrapped typed errors.
var (
	ErrSchema          = errors.New("schema error")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrSchemaEmpty     = errors.New("schema empty")
	ErrOutOfRange      = errors.New("out of range")
	ErrParse           = errors.New("parse error")
	ErrUnknownFunction = errors.New("unknown function")
	ErrArgCount        = errors.New("wrong number of arguments")
	ErrType            = errors.New("type error")
	ErrUnsupportedOp   = errors.New("unsupported operation")
	ErrCycle           = errors.New("cycle detected")
)

// SchemaError reports a bad column name, duplicate column, disallowed
// kind, or a missing column in a lookup.
type SchemaError struct {
	Op     string // "add", "remove", "lookup"
	Column string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema %s %q: %s", e.Op, e.Column, e.Reason)
	}
	return fmt.Sprintf("schema %s: %s", e.Op, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrSchema
}

// NewSchema creates a SchemaError.
func NewSchema(op, column, reason string) *SchemaError {
	return &SchemaError{Op: op, Column: column, Reason: reason}
}

// TypeMismatchError reports a typed cell access against the wrong
// declared column kind.
type TypeMismatchError struct {
	Column   string
	Declared string
	Want     string
	Err      error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %q is %s, not %s", e.Column, e.Declared, e.Want)
}

func (e *TypeMismatchError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrTypeMismatch
}

// NewTypeMismatch creates a TypeMismatchError.
func NewTypeMismatch(column, declared, want string) *TypeMismatchError {
	return &TypeMismatchError{Column: column, Declared: declared, Want: want}
}

// SchemaEmptyError reports a row operation attempted on a table with
// zero columns.
type SchemaEmptyError struct {
	Op  string
	Err error
}

func (e *SchemaEmptyError) Error() string {
	return fmt.Sprintf("%s: schema has no columns", e.Op)
}

func (e *SchemaEmptyError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrSchemaEmpty
}

// NewSchemaEmpty creates a SchemaEmptyError.
func NewSchemaEmpty(op string) *SchemaEmptyError {
	return &SchemaEmptyError{Op: op}
}

// OutOfRangeError reports a direct cell access with an invalid row or
// column index. Row addition/removal is lenient and does not use this.
type OutOfRangeError struct {
	Op    string
	Index int
	Bound int
	Err   error
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Bound)
}

func (e *OutOfRangeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrOutOfRange
}

// NewOutOfRange creates an OutOfRangeError.
func NewOutOfRange(op string, index, bound int) *OutOfRangeError {
	return &OutOfRangeError{Op: op, Index: index, Bound: bound}
}

// QueryParseError reports that an expression could not be parsed. It
// carries the byte offset at which parsing stopped and the original
// input, per the select driver's propagation contract.
type QueryParseError struct {
	Offset  int
	Input   string
	Message string
	Err     error
}

func (e *QueryParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s (in %q)", e.Offset, e.Message, e.Input)
}

func (e *QueryParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// NewQueryParse creates a QueryParseError.
func NewQueryParse(offset int, input, message string) *QueryParseError {
	return &QueryParseError{Offset: offset, Input: input, Message: message}
}

// UnknownFunctionError reports a VM function call to an unregistered
// name.
type UnknownFunctionError struct {
	Name string
	Err  error
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

func (e *UnknownFunctionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnknownFunction
}

// NewUnknownFunction creates an UnknownFunctionError.
func NewUnknownFunction(name string) *UnknownFunctionError {
	return &UnknownFunctionError{Name: name}
}

// ArgCountError reports a VM function call with the wrong arity.
type ArgCountError struct {
	Name string
	Got  int
	Err  error
}

func (e *ArgCountError) Error() string {
	return fmt.Sprintf("%s: wrong number of arguments (%d given)", e.Name, e.Got)
}

func (e *ArgCountError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrArgCount
}

// NewArgCount creates an ArgCountError.
func NewArgCount(name string, got int) *ArgCountError {
	return &ArgCountError{Name: name, Got: got}
}

// TypeErr reports VM comparison dispatch on a left operand of an
// unrecognized runtime kind.
type TypeErr struct {
	Kind string
	Op   string
	Err  error
}

func (e *TypeErr) Error() string {
	return fmt.Sprintf("%s: unsupported operand kind %s", e.Op, e.Kind)
}

func (e *TypeErr) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrType
}

// NewType creates a TypeErr.
func NewType(op, kind string) *TypeErr {
	return &TypeErr{Op: op, Kind: kind}
}

// UnsupportedOpError reports an operation the engine deliberately does
// not implement for a given kind, e.g. parsing a string into a
// sub-table cell.
type UnsupportedOpError struct {
	Op     string
	Reason string
	Err    error
}

func (e *UnsupportedOpError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("unsupported: %s", e.Op)
}

func (e *UnsupportedOpError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupportedOp
}

// NewUnsupportedOp creates an UnsupportedOpError.
func NewUnsupportedOp(op, reason string) *UnsupportedOpError {
	return &UnsupportedOpError{Op: op, Reason: reason}
}

// CycleError reports that setting a sub-table cell would introduce a
// reference cycle among tables.
type CycleError struct {
	Table string
	Err   error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("setting sub-table %q would create a cycle", e.Table)
}

func (e *CycleError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrCycle
}

// NewCycle creates a CycleError.
func NewCycle(table string) *CycleError {
	return &CycleError{Table: table}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
