// Package sse reads server-sent-event style frames from a byte stream.
//
// The reader recognizes frames by their "data: " prefix, buffers partial
// lines until a newline arrives, and treats the literal "[DONE]" payload as
// end of stream. Non-data lines (comments, event/id fields, keep-alive
// blanks) are skipped.
package sse

import (
	"bufio"
	"bytes"
	"io"
)

var (
	dataPrefix = []byte("data:")
	doneMarker = []byte("[DONE]")
)

// Reader yields the payload of successive data frames from a stream.
// It is not safe for concurrent use and cannot seek; restart by opening a
// new stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the payload of the next data frame. It returns io.EOF when
// the terminator frame is read or the underlying stream ends cleanly; any
// other error comes from the underlying reader.
func (r *Reader) Next() ([]byte, error) {
	for {
		line, err := r.br.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				// A final unterminated line still counts as a frame.
				if payload, ok := framePayload(line); ok {
					if bytes.Equal(payload, doneMarker) {
						return nil, io.EOF
					}
					return payload, nil
				}
				return nil, io.EOF
			}
			return nil, err
		}

		payload, ok := framePayload(line)
		if !ok {
			continue
		}
		if bytes.Equal(payload, doneMarker) {
			return nil, io.EOF
		}
		return payload, nil
	}
}

// framePayload strips the data prefix and surrounding whitespace from one
// line. Returns false for lines that are not data frames.
func framePayload(line []byte) ([]byte, bool) {
	line = bytes.TrimRight(line, "\r\n")
	if !bytes.HasPrefix(line, dataPrefix) {
		return nil, false
	}
	payload := bytes.TrimSpace(line[len(dataPrefix):])
	if len(payload) == 0 {
		return nil, false
	}
	return payload, true
}
