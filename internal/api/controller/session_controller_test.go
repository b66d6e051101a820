package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ctchen222/tictactoe-hotseat/internal/api/service"
	"ctchen222/tictactoe-hotseat/internal/game"
	"ctchen222/tictactoe-hotseat/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLive struct{ ids []string }

func (f fakeLive) Sessions() []string { return f.ids }

func (f fakeLive) Lookup(id string) bool {
	for _, v := range f.ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeFinder struct {
	records map[string]*repository.SessionRecord
	err     error
}

func (f fakeFinder) FindByID(_ context.Context, id string) (*repository.SessionRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.records[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return r, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func setupRouter(finder fakeFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sc := NewSessionController(service.NewSessionService(fakeLive{ids: []string{"a", "b"}}, finder))

	r := gin.New()
	r.GET("/api/sessions", sc.List)
	r.GET("/api/sessions/:id", sc.Get)
	return r
}

func serve(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSessionController_List(t *testing.T) {
	r := setupRouter(fakeFinder{})

	w, body := serve(t, r, "/api/sessions")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.JSONEq(t, `{"list":["a","b"]}`, string(body.Extras))
}

func TestSessionController_Get(t *testing.T) {
	snap := game.Snapshot{
		Board:   game.Board{game.PlayerX},
		Current: game.PlayerO,
		Phase:   game.PhasePlaying,
		Scores:  game.Scores{X: 2, Draw: 1},
	}
	finder := fakeFinder{records: map[string]*repository.SessionRecord{
		"a": {ID: "a", Snapshot: snap, UpdatedAt: time.Unix(0, 0).UTC()},
	}}

	t.Run("Known session", func(t *testing.T) {
		r := setupRouter(finder)

		w, body := serve(t, r, "/api/sessions/a")

		require.Equal(t, http.StatusOK, w.Code)
		var view struct {
			ID       string        `json:"id"`
			Live     bool          `json:"live"`
			Snapshot game.Snapshot `json:"snapshot"`
		}
		require.NoError(t, json.Unmarshal(body.Extras, &view))
		assert.Equal(t, "a", view.ID)
		assert.True(t, view.Live)
		assert.Equal(t, snap, view.Snapshot)
	})

	t.Run("Unknown session is 404", func(t *testing.T) {
		r := setupRouter(finder)

		w, body := serve(t, r, "/api/sessions/nope")

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, body.Success)
		assert.Equal(t, http.StatusNotFound, body.Code)
	})

	t.Run("Store failure is 500", func(t *testing.T) {
		r := setupRouter(fakeFinder{err: errors.New("redis down")})

		w, body := serve(t, r, "/api/sessions/a")

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"failed to load session"}`, string(body.Extras))
	})
}
