// Package web serves the PowerConnect HTML interface.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/actions"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
	"github.com/good-yellow-bee/powerconnect/internal/toast"
	"github.com/good-yellow-bee/powerconnect/internal/uistate"
	"github.com/good-yellow-bee/powerconnect/internal/web/handlers"
)

//go:embed static
var staticFS embed.FS

// ClientTTL is how long idle browser state is kept.
const ClientTTL = 24 * time.Hour

type Server struct {
	handler          *handlers.Handler
	clients          *uistate.Store
	csrfKey          []byte
	useSecureCookies bool
}

// NewServer creates the web UI server with its own client state store.
func NewServer(store storage.Storage, svc *actions.Service, toasts *toast.Queue, csrfKey string, useSecureCookies bool) *Server {
	clients := uistate.NewStore(ClientTTL)
	return &Server{
		handler:          handlers.NewHandler(store, clients, svc, toasts),
		clients:          clients,
		csrfKey:          []byte(csrfKey),
		useSecureCookies: useSecureCookies,
	}
}

func (s *Server) StaticFS() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Unrecoverable init error - server cannot function without static assets
		panic(fmt.Sprintf("failed to create static FS: %v", err))
	}
	return http.FileServer(http.FS(sub))
}

func (s *Server) Clients() *uistate.Store {
	return s.clients
}

func (s *Server) Handler() *handlers.Handler {
	return s.handler
}

func (s *Server) CSRFKey() []byte {
	return s.csrfKey
}

// Close stops the client state cleanup loop.
func (s *Server) Close() {
	s.clients.Close()
}
