// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit queues edits over a byte slice using rsc.io/edit and
// applies them all at once, so a rendered page is copied a single time no
// matter how many occurrences are rewritten.
package sliceedit

import (
	"bytes"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed    *edit.Buffer
	buf   []byte
	edits int
}

// NewBuffer returns a buffer accumulating changes to data.
// The buffer keeps a reference to data, which must not be modified
// until the Buffer is no longer used.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{
		ed:  edit.NewBuffer(data),
		buf: data,
	}
}

// FindAll returns the offsets of all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	offset := 0
	for {
		i := bytes.Index(buf[offset:], []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, offset+i)
		offset += i + len(item)
	}
}

// ReplaceAllString queues the replacement of every instance of old with new
// and returns the number of instances found.
func (b *Buffer) ReplaceAllString(old string, new string) int {
	hits := FindAll(b.buf, old)
	for _, hit := range hits {
		b.ed.Replace(hit, hit+len(old), new)
	}
	b.edits += len(hits)
	return len(hits)
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	if b.edits == 0 {
		return append([]byte{}, b.buf...)
	}
	return b.ed.Bytes()
}

// ReplaceAll applies a list of old, new string pairs to data in one pass.
// The old strings must not overlap each other anywhere in data.
// It panics if given an odd number of arguments.
func ReplaceAll(data []byte, oldnew ...string) []byte {
	if len(oldnew)%2 == 1 {
		panic("sliceedit.ReplaceAll: odd argument count")
	}

	b := NewBuffer(data)
	for i := 0; i < len(oldnew); i += 2 {
		b.ReplaceAllString(oldnew[i], oldnew[i+1])
	}
	return b.Bytes()
}
