package response

import "strconv"

type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusMovedPermanently    StatusCode = 301
	StatusBadRequest          StatusCode = 400
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusInternalServerError StatusCode = 500
)

var reasonPhrases = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusMovedPermanently:    "Moved Permanently",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusInternalServerError: "Internal Server Error",
}

// Reason returns the reason phrase, or "" for codes the server never sends.
func (s StatusCode) Reason() string {
	return reasonPhrases[s]
}

// String is the status as it appears on the status line, e.g. "404 Not Found".
func (s StatusCode) String() string {
	return strconv.Itoa(int(s)) + " " + s.Reason()
}
