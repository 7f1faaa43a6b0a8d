package openaicompat

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	dataPrefix   = []byte("data: ")
	doneSentinel = []byte("[DONE]")

	errInvalidJSON = errors.New("invalid JSON payload")
)

// deltaPath locates the incremental text inside a chat-completions chunk.
const deltaPath = "choices.0.delta.content"

// StreamDecoder turns an SSE framed chat-completions body into cumulative text.
// A decoder is single use and not safe for concurrent use.
type StreamDecoder struct {
	onWarning func(DecodeWarning)

	carry []byte
	total strings.Builder
}

// NewStreamDecoder returns a decoder. onWarning may be nil.
func NewStreamDecoder(onWarning func(DecodeWarning)) *StreamDecoder {
	return &StreamDecoder{onWarning: onWarning}
}

// Decode reads r until EOF. After each non-empty delta it calls onStream
// (if not nil) with the cumulative text and finally returns that text.
// A read error aborts decoding and is returned together with the text
// decoded so far.
func (d *StreamDecoder) Decode(r io.Reader, onStream func(string)) (string, error) {
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			d.feed(buf[:n], onStream)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return d.total.String(), err
		}
	}

	// A body that does not end with a newline still carries a complete last line.
	if len(d.carry) > 0 {
		line := d.carry
		d.carry = nil
		d.processLine(line, onStream)
	}
	return d.total.String(), nil
}

// feed appends chunk to the carry-over buffer and processes every complete line.
// The trailing fragment stays in the buffer until more bytes arrive.
func (d *StreamDecoder) feed(chunk []byte, onStream func(string)) {
	d.carry = append(d.carry, chunk...)
	for {
		i := bytes.IndexByte(d.carry, '\n')
		if i < 0 {
			break
		}
		line := d.carry[:i]
		d.processLine(line, onStream)
		d.carry = d.carry[i+1:]
	}
	if len(d.carry) == 0 {
		d.carry = nil
	}
}

func (d *StreamDecoder) processLine(line []byte, onStream func(string)) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if !bytes.HasPrefix(line, dataPrefix) {
		return
	}
	payload := bytes.TrimSpace(line[len(dataPrefix):])
	if bytes.Equal(payload, doneSentinel) {
		return
	}
	if !gjson.ValidBytes(payload) {
		d.warn(DecodeWarning{Line: string(line), Err: errInvalidJSON})
		return
	}

	delta := gjson.GetBytes(payload, deltaPath).String()
	if delta == "" {
		return
	}
	d.total.WriteString(delta)
	if onStream != nil {
		onStream(d.total.String())
	}
}

func (d *StreamDecoder) warn(w DecodeWarning) {
	if d.onWarning != nil {
		d.onWarning(w)
	}
}
