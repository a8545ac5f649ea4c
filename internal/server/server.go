package server

import (
	"errors"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhdewitt/www-from-tcp/internal/config"
	"github.com/nhdewitt/www-from-tcp/internal/request"
	"github.com/nhdewitt/www-from-tcp/internal/response"
)

// defaultVersion answers requests whose request line never parsed.
const defaultVersion = "HTTP/1.1"

type Server struct {
	listener    net.Listener
	isListening atomic.Bool
	handler     Handler
	cfg         config.ServerConfig
	logger      zerolog.Logger

	// mu orders conns.Add in listen against the flag swap in Close.
	mu    sync.Mutex
	conns sync.WaitGroup

	// now stamps the Date header. Deadlines always use the wall clock.
	now func() time.Time
}

// Serve binds cfg's address and accepts connections until Close.
func Serve(cfg config.ServerConfig, handler Handler, logger zerolog.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener: listener,
		handler:  handler,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
	s.isListening.Store(true)
	go s.listen()

	return s, nil
}

// Addr is the bound address, useful when the configured port was 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting and waits for connections in flight.
func (s *Server) Close() error {
	s.mu.Lock()
	if !s.isListening.CompareAndSwap(true, false) {
		s.mu.Unlock()
		return nil
	}
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.mu.Unlock()

	s.conns.Wait()

	return err
}

func (s *Server) listen() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.isListening.Load() {
				return
			}
			s.logger.Error().Err(err).Msg("error accepting connection")
			continue
		}
		s.mu.Lock()
		if !s.isListening.Load() {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns.Add(1)
		s.mu.Unlock()

		if s.cfg.Sequential {
			s.handle(conn)
			continue
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.conns.Done()
	defer conn.Close()

	log := s.logger.With().
		Str("conn_id", uuid.NewString()).
		Str("remote", conn.RemoteAddr().String()).
		Logger()

	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	version := defaultVersion
	req, err := request.RequestFromReader(conn, s.cfg.MaxRequestBytes)
	var content response.Content
	switch {
	case errors.Is(err, request.ErrEmptyRequest):
		log.Debug().Msg("connection closed without a request")
		return
	case errors.Is(err, request.ErrMalformedRequestLine), errors.Is(err, request.ErrRequestTooLarge):
		log.Warn().Err(err).Msg("bad request")
		content = response.ErrorContent(response.StatusBadRequest)
	case err != nil:
		log.Warn().Err(err).Msg("error reading request")
		return
	default:
		version = req.RequestLine.HttpVersion
		content, err = s.handler(req)
		if err != nil {
			log.Error().Err(err).
				Str("method", req.RequestLine.Method).
				Str("target", req.RequestLine.RequestTarget).
				Msg("error handling request")
			content = response.ErrorContent(response.StatusInternalServerError)
		}
	}

	if s.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	if err := response.Write(conn, version, content, s.now()); err != nil {
		log.Warn().Err(err).Msg("error writing response")
		return
	}

	ev := log.Info().Int("status", int(content.Status)).Int("length", content.Length)
	if req != nil {
		ev = ev.Str("method", req.RequestLine.Method).Str("target", req.RequestLine.RequestTarget)
	}
	ev.Msg("served")
}
