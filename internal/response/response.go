package response

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nhdewitt/www-from-tcp/internal/headers"
)

const (
	crlf = "\r\n"

	// DateFormat is the HTTP-date layout. time.RFC1123 would print "UTC".
	DateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

	MimeHTML    = "text/html"
	MimeCSS     = "text/css"
	MimeDefault = "application/octet-stream"
)

// Content is everything needed to answer one request.
type Content struct {
	Status   StatusCode
	Length   int
	MimeType string
	Body     string
	// Location is only sent with 301.
	Location string
}

const errorTemplate = `<!DOCTYPE html>
<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta http-equiv="X-UA-Compatible" content="IE=edge">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>%s</title>
	</head>
	<body>
		%s
	</body>
</html>
`

// ErrorContent synthesizes the HTML page for a non-200 status.
func ErrorContent(status StatusCode) Content {
	body := fmt.Sprintf(errorTemplate, status, status)
	return Content{
		Status:   status,
		Length:   len(body),
		MimeType: MimeHTML,
		Body:     body,
	}
}

// Fields builds the response header block in wire order.
func (c Content) Fields(now time.Time) headers.Fields {
	var h headers.Fields
	h.Add("Date", now.UTC().Format(DateFormat))
	if c.Status == StatusMovedPermanently && c.Location != "" {
		h.Add("Location", c.Location)
	}
	h.Add("Content-Length", strconv.Itoa(c.Length))
	mime := c.MimeType
	if mime == "" {
		mime = MimeDefault
	}
	h.Add("Content-Type", mime)
	h.Add("Connection", "close")
	return h
}

// Write serializes a complete response for c.
func Write(w io.Writer, version string, c Content, now time.Time) error {
	rw := NewWriter(w)
	if err := rw.WriteStatusLine(version, c.Status); err != nil {
		return err
	}
	if err := rw.WriteHeaders(c.Fields(now)); err != nil {
		return err
	}
	if _, err := rw.WriteBody([]byte(c.Body)); err != nil {
		return fmt.Errorf("error writing body: %w", err)
	}
	return nil
}
