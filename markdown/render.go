package markdown

import (
	"fmt"
	"strconv"
)

// ByteRenderer accumulates rendered output in a growing byte slice.
// The zero value is ready to use.
type ByteRenderer struct {
	buf []byte
}

// Render appends the elements to the buffer. Strings and byte slices are
// written as-is, integers in decimal and anything else with its default
// fmt formatting.
func (br *ByteRenderer) Render(elems ...any) {
	for _, e := range elems {
		switch v := e.(type) {
		case string:
			br.buf = append(br.buf, v...)
		case []byte:
			br.buf = append(br.buf, v...)
		case byte:
			br.buf = append(br.buf, v)
		case int:
			br.buf = strconv.AppendInt(br.buf, int64(v), 10)
		default:
			br.buf = fmt.Append(br.buf, v)
		}
	}
}

// String returns the rendered output as a string.
func (br *ByteRenderer) String() string {
	return string(br.buf)
}
