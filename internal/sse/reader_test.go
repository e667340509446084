package sse

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) []string {
	t.Helper()
	var frames []string
	for {
		payload, err := r.Next()
		if err == io.EOF {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, string(payload))
	}
}

func TestReaderBasicFrames(t *testing.T) {
	stream := "data: {\"a\":1}\n\ndata: {\"b\":2}\n\ndata: [DONE]\n"
	frames := readAll(t, NewReader(strings.NewReader(stream)))
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, frames)
}

func TestReaderSkipsNonDataLines(t *testing.T) {
	stream := ": keep-alive\nevent: message\nid: 42\ndata: {\"x\":true}\n\ndata: [DONE]\n"
	frames := readAll(t, NewReader(strings.NewReader(stream)))
	assert.Equal(t, []string{`{"x":true}`}, frames)
}

func TestReaderHandlesCRLF(t *testing.T) {
	stream := "data: {\"a\":1}\r\n\r\ndata: [DONE]\r\n"
	frames := readAll(t, NewReader(strings.NewReader(stream)))
	assert.Equal(t, []string{`{"a":1}`}, frames)
}

func TestReaderEOFWithoutDoneMarker(t *testing.T) {
	stream := "data: {\"a\":1}\n"
	frames := readAll(t, NewReader(strings.NewReader(stream)))
	assert.Equal(t, []string{`{"a":1}`}, frames)
}

func TestReaderFinalUnterminatedLine(t *testing.T) {
	// The upstream may close the connection without a trailing newline.
	stream := "data: {\"a\":1}\n\ndata: {\"b\":2}"
	frames := readAll(t, NewReader(strings.NewReader(stream)))
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, frames)
}

func TestReaderNoSpaceAfterPrefix(t *testing.T) {
	stream := "data:{\"a\":1}\n\ndata:[DONE]\n"
	frames := readAll(t, NewReader(strings.NewReader(stream)))
	assert.Equal(t, []string{`{"a":1}`}, frames)
}

func TestReaderEmptyStream(t *testing.T) {
	frames := readAll(t, NewReader(strings.NewReader("")))
	assert.Empty(t, frames)
}
