// Package fileserver turns a parsed request into the Content answering it,
// resolving the request path against a document root.
package fileserver

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/nhdewitt/www-from-tcp/internal/request"
	"github.com/nhdewitt/www-from-tcp/internal/resolver"
	"github.com/nhdewitt/www-from-tcp/internal/response"
)

const indexFile = "index.html"

var ErrMissingHost = errors.New("missing Host header for redirect")

var mimeTypes = map[string]string{
	"html": response.MimeHTML,
	"css":  response.MimeCSS,
}

type FileServer struct {
	resolver resolver.Resolver
}

func New(r resolver.Resolver) *FileServer {
	return &FileServer{resolver: r}
}

// Generate answers req. Errors are only returned for conditions no defined
// status covers: a redirect without a Host header, or a failing filesystem.
func (s *FileServer) Generate(req *request.Request) (response.Content, error) {
	if !strings.EqualFold(req.RequestLine.Method, "GET") {
		return response.ErrorContent(response.StatusMethodNotAllowed), nil
	}

	target := req.RequestLine.RequestTarget
	filePath, found, err := s.resolve(target)
	if err != nil {
		return response.Content{}, err
	}
	if !found {
		return response.ErrorContent(response.StatusNotFound), nil
	}

	isDir, err := s.resolver.IsDirectory(filePath)
	if err != nil {
		return response.Content{}, fmt.Errorf("stat %s: %w", filePath, err)
	}
	if isDir {
		host, ok := req.Headers.Lookup("Host")
		if !ok {
			return response.Content{}, ErrMissingHost
		}
		c := response.ErrorContent(response.StatusMovedPermanently)
		c.Location = "http://" + host + target + "/"
		return c, nil
	}

	body, err := s.resolver.ReadFile(filePath)
	if err != nil {
		return response.Content{}, fmt.Errorf("read %s: %w", filePath, err)
	}

	return response.Content{
		Status:   response.StatusOK,
		Length:   len(body),
		MimeType: MimeType(path.Base(filePath)),
		Body:     body,
	}, nil
}

// resolve walks target one segment at a time, requiring each segment to be
// an entry of the directory reached so far.
func (s *FileServer) resolve(target string) (string, bool, error) {
	segments := strings.Split(target, "/")
	if segments[0] == "" {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		segments = []string{""}
	}
	if segments[len(segments)-1] == "" {
		segments[len(segments)-1] = indexFile
	}

	cur := resolver.Root
	for i, seg := range segments {
		if seg == "." || seg == ".." {
			return "", false, nil
		}
		if i > 0 {
			isDir, err := s.resolver.IsDirectory(cur)
			if err != nil {
				return "", false, fmt.Errorf("stat %s: %w", cur, err)
			}
			if !isDir {
				return "", false, nil
			}
		}
		entries, err := s.resolver.ListEntries(cur)
		if err != nil {
			return "", false, fmt.Errorf("list %s: %w", cur, err)
		}
		if _, ok := entries[seg]; !ok {
			return "", false, nil
		}
		cur = path.Join(cur, seg)
	}

	return cur, true, nil
}

// MimeType maps the extension after the last "." of name. A name without a
// "." has no extension.
func MimeType(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return response.MimeDefault
	}
	if t, ok := mimeTypes[name[i+1:]]; ok {
		return t
	}
	return response.MimeDefault
}
