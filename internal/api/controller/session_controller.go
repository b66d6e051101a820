package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"ctchen222/tictactoe-hotseat/internal/api/response"
	"ctchen222/tictactoe-hotseat/internal/api/service"

	"github.com/gin-gonic/gin"
)

// SessionController handles session-related HTTP requests.
type SessionController struct {
	sessionService service.SessionService
}

// NewSessionController creates a new SessionController.
func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// List returns the IDs of the sessions live on this server.
func (sc *SessionController) List(c *gin.Context) {
	ids := sc.sessionService.List(c.Request.Context())

	list := make([]any, 0, len(ids))
	for _, id := range ids {
		list = append(list, id)
	}
	response.SuccessResponseList(c, list)
}

// Get returns the stored snapshot of one session.
func (sc *SessionController) Get(c *gin.Context) {
	id := c.Param("id")

	view, err := sc.sessionService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrSessionNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to get session", "session.id", id, "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to load session")
		return
	}

	response.SuccessResponse(c, view)
}
