package server

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"ctchen222/tictactoe-hotseat/internal/api/controller"
	"ctchen222/tictactoe-hotseat/internal/api/response"
	"ctchen222/tictactoe-hotseat/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Registrar accepts new connections for the hub.
type Registrar interface {
	Register() chan<- *hub.RegistrationRequest
	Done() <-chan struct{}
}

type Server struct {
	hub               Registrar
	sessionController *controller.SessionController
	webDir            string
	upgrader          websocket.Upgrader
	engine            *gin.Engine
}

func NewServer(h Registrar, sc *controller.SessionController, webDir string) *Server {
	s := &Server{
		hub:               h,
		sessionController: sc,
		webDir:            webDir,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine = s.routes()
	return s
}

// Engine returns the gin handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponseContent(c, "ok")
	})
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/sessions", s.sessionController.List)
		api.GET("/sessions/:id", s.sessionController.Get)
	}

	r.StaticFile("/", filepath.Join(s.webDir, "index.html"))
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, response.ErrNotFound)
	})

	return r
}

// handleWebSocket upgrades the connection and hands it to the hub. Every
// connection is a new session; an explicit sessionId only names it.
func (s *Server) handleWebSocket(c *gin.Context) {
	r := c.Request
	ctx, span := tracer.Start(r.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", r.URL.String()),
		attribute.String("http.method", r.Method),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	sessionID := c.Query("sessionId")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("session.id", sessionID))

	req := &hub.RegistrationRequest{
		SessionID: sessionID,
		Conn:      conn,
		Ctx:       ctx,
	}

	select {
	case s.hub.Register() <- req:
	case <-s.hub.Done():
		slog.WarnContext(ctx, "Hub stopped, refusing connection", "session.id", sessionID)
		span.SetStatus(codes.Error, "Hub stopped")
		_ = conn.Close()
	case <-r.Context().Done():
		slog.WarnContext(ctx, "Request cancelled before registration", "session.id", sessionID)
		_ = conn.Close()
	}
}
