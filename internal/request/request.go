package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nhdewitt/www-from-tcp/internal/headers"
)

const (
	bufferSize = 1024
	crlf       = "\r\n"
	headersEnd = "\r\n\r\n"
)

var (
	ErrEmptyRequest         = errors.New("empty request")
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrRequestTooLarge      = errors.New("request header block too large")
)

type Request struct {
	RequestLine RequestLine
	Headers     headers.Headers
}

type RequestLine struct {
	HttpVersion   string
	RequestTarget string
	Method        string
}

// RequestFromReader reads until the blank line ending the header block, or
// EOF, and parses what it got. At most maxBytes are buffered.
func RequestFromReader(reader io.Reader, maxBytes int) (*Request, error) {
	if maxBytes <= 0 {
		maxBytes = bufferSize
	}
	buf := make([]byte, min(bufferSize, maxBytes))
	readToIndex := 0

	for {
		if readToIndex == len(buf) {
			if len(buf) >= maxBytes {
				return nil, fmt.Errorf("%w: over %d bytes", ErrRequestTooLarge, maxBytes)
			}
			tmpBuf := make([]byte, min(len(buf)*2, maxBytes))
			copy(tmpBuf, buf[:readToIndex])
			buf = tmpBuf
		}

		n, err := reader.Read(buf[readToIndex:])
		if n > 0 {
			// only the tail of the previous read plus the new bytes can hold a new terminator
			from := max(readToIndex-len(headersEnd)+1, 0)
			readToIndex += n
			if idx := bytes.Index(buf[from:readToIndex], []byte(headersEnd)); idx != -1 {
				return Parse(buf[:from+idx])
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(bytes.TrimSpace(buf[:readToIndex])) == 0 {
					return nil, ErrEmptyRequest
				}
				return Parse(buf[:readToIndex])
			}
			return nil, err
		}
	}
}

// Parse turns one raw client message into a Request. It does no I/O.
func Parse(data []byte) (*Request, error) {
	msg := strings.TrimSpace(string(data))
	lines := strings.Split(msg, crlf)

	rl, err := requestLineFromString(lines[0])
	if err != nil {
		return nil, err
	}

	h := headers.NewHeaders()
	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		h.ParseLine(line)
	}

	return &Request{
		RequestLine: *rl,
		Headers:     h,
	}, nil
}

func requestLineFromString(s string) (*RequestLine, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, s)
	}

	return &RequestLine{
		Method:        parts[0],
		RequestTarget: parts[1],
		HttpVersion:   parts[2],
	}, nil
}
