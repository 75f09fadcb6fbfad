package spec

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrorCode categorizes swagen errors for clearer handling and messaging.
type ErrorCode string

const (
	// Retrieval.
	InputError      ErrorCode = "InputError"
	NetworkError    ErrorCode = "NetworkError"
	ConversionError ErrorCode = "ConversionError"

	// Parsing.
	MalformedInput    ErrorCode = "MalformedInput"
	TypeResolution    ErrorCode = "TypeResolution"
	InvalidReference  ErrorCode = "InvalidReference"
	MissingServiceTag ErrorCode = "MissingServiceTag"

	// Naming.
	TransformConfig ErrorCode = "TransformConfig"
	NameCollision   ErrorCode = "NameCollision"
)

// Sentinels for errors.Is. Every *SpecError matches the sentinel of its Code.
var (
	ErrInput             = errors.New("invalid input")
	ErrNetwork           = errors.New("network failure")
	ErrConversion        = errors.New("conversion failed")
	ErrMalformedInput    = errors.New("malformed input")
	ErrTypeResolution    = errors.New("type resolution failed")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrMissingServiceTag = errors.New("missing service tag")
	ErrTransformConfig   = errors.New("invalid transform configuration")
	ErrNameCollision     = errors.New("name collision")
)

var sentinels = map[ErrorCode]error{
	InputError:        ErrInput,
	NetworkError:      ErrNetwork,
	ConversionError:   ErrConversion,
	MalformedInput:    ErrMalformedInput,
	TypeResolution:    ErrTypeResolution,
	InvalidReference:  ErrInvalidReference,
	MissingServiceTag: ErrMissingServiceTag,
	TransformConfig:   ErrTransformConfig,
	NameCollision:     ErrNameCollision,
}

// SpecError is a structured error with optional location, JSON Pointer and
// line/column information.
type SpecError struct {
	Code        ErrorCode
	Message     string
	Location    string // file path or URL
	JSONPointer string // e.g. "#/definitions/Pet/properties/tags"
	Line        int    // 1-based, 0 when unknown
	Column      int    // 1-based, 0 when unknown
	Cause       error
}

// Errorf builds a *SpecError with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *SpecError {
	return &SpecError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *SpecError) Error() string {
	msg := e.Message
	if e.JSONPointer != "" {
		msg += " (at " + e.JSONPointer + ")"
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column)
	}
	return msg
}

func (e *SpecError) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for e.Code.
func (e *SpecError) Is(target error) bool {
	s, ok := sentinels[e.Code]
	return ok && s == target
}

// at sets the JSON pointer and returns e for chaining.
func (e *SpecError) at(pointer string) *SpecError {
	if e.JSONPointer == "" {
		e.JSONPointer = pointer
	}
	return e
}

// malformed maps a decoding error to MalformedInput, recovering line and
// column from JSON syntax errors and yaml messages.
func malformed(data []byte, err error) *SpecError {
	se := &SpecError{Code: MalformedInput, Message: "malformed document: " + err.Error(), Cause: err}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		se.Line, se.Column = lineColumn(data, syn.Offset)
		return se
	}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		se.Line, _ = strconv.Atoi(m[1])
	}
	return se
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// pointerEscape escapes a JSON Pointer reference token.
func pointerEscape(token string) string {
	out := make([]byte, 0, len(token))
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, token[i])
		}
	}
	return string(out)
}
