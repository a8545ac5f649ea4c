package server

import (
	"github.com/nhdewitt/www-from-tcp/internal/request"
	"github.com/nhdewitt/www-from-tcp/internal/response"
)

// Handler produces the Content for one parsed request. A non-nil error is
// answered with 500 Internal Server Error.
type Handler func(req *request.Request) (response.Content, error)
