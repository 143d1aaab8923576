package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/catalogworks/go-catalog-server/catalog"
	"github.com/catalogworks/go-catalog-server/identity"
	"github.com/catalogworks/go-catalog-server/internal/config"
	"github.com/google/uuid"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	identity *identity.Service
	catalog  catalog.Repo
	cookie   *sessionCookieCodec
}

func New(cfg config.Config, identityService *identity.Service, catalogRepo catalog.Repo) (*Server, error) {
	if identityService == nil {
		return nil, errors.New("[Server New] identity service is required")
	}
	if catalogRepo == nil {
		return nil, errors.New("[Server New] catalog repo is required")
	}

	cookie, err := newSessionCookieCodec(
		cfg.GetSessionCookieName(),
		cfg.GetSessionKey(),
		int(cfg.GetMaxSessionAge().Seconds()),
	)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session cookie codec: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		identity: identityService,
		catalog:  catalogRepo,
		cookie:   cookie,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// sessionID returns the browser session ID from the sealed cookie, minting
// a fresh one (and setting the cookie) when absent or unreadable.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, err := s.cookie.Decode(r); err == nil {
		return id, nil
	}
	id := uuid.New().String()
	cookie, err := s.cookie.Encode(id)
	if err != nil {
		return "", fmt.Errorf("[sessionID] failed to seal session cookie: %w", err)
	}
	http.SetCookie(w, cookie)
	return id, nil
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
