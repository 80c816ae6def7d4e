package markdown

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedDelimiter is matched by every *DelimiterError.
	ErrUnbalancedDelimiter = errors.New("invalid Markdown syntax - unbalanced delimiter")

	ErrMissingValue    = errors.New("leaf node has no value")
	ErrMissingTag      = errors.New("parent node has no tag")
	ErrMissingChildren = errors.New("parent node has no children")

	ErrInvalidSpanRole  = errors.New("invalid span role")
	ErrInvalidBlockType = errors.New("invalid block type")
)

// DelimiterError reports an inline delimiter without its closing pair.
type DelimiterError struct {
	Delimiter string
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("invalid Markdown syntax - missing closing %q", e.Delimiter)
}

func (e *DelimiterError) Unwrap() error {
	return ErrUnbalancedDelimiter
}

// SyntaxError locates the block of the document that could not be lowered.
// Filename is empty unless the caller sets it.
type SyntaxError struct {
	Filename string
	Line     int
	Msg      string
	Err      error
}

func (e *SyntaxError) Error() string {
	if len(e.Filename) > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.Filename, e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
