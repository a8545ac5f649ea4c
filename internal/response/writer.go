package response

import (
	"errors"
	"fmt"
	"io"

	"github.com/nhdewitt/www-from-tcp/internal/headers"
)

type writerState int

const (
	StateWritingStatusLine writerState = iota
	StateWritingHeaders
	StateWritingBody
	StateDone
)

var (
	ErrWriterState   = errors.New("writer state out-of-order")
	ErrUnknownStatus = errors.New("unknown status code")
)

type Writer struct {
	writer io.Writer
	state  writerState
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: w,
		state:  StateWritingStatusLine,
	}
}

// WriteStatusLine echoes the request's protocol version in front of the status.
func (w *Writer) WriteStatusLine(version string, statusCode StatusCode) error {
	if w.state != StateWritingStatusLine {
		return ErrWriterState
	}
	if statusCode.Reason() == "" {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, int(statusCode))
	}

	if _, err := io.WriteString(w.writer, version+" "+statusCode.String()+crlf); err != nil {
		return fmt.Errorf("error writing status line: %w", err)
	}

	w.state = StateWritingHeaders
	return nil
}

func (w *Writer) WriteHeaders(h headers.Fields) error {
	if w.state != StateWritingHeaders {
		return ErrWriterState
	}

	if err := h.Write(w.writer); err != nil {
		return err
	}

	w.state = StateWritingBody
	return nil
}

func (w *Writer) WriteBody(p []byte) (int, error) {
	if w.state != StateWritingBody {
		return 0, ErrWriterState
	}

	w.state = StateDone
	return w.writer.Write(p)
}
