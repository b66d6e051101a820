package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"ctchen222/tictactoe-hotseat/internal/events"
	"ctchen222/tictactoe-hotseat/internal/game"
	"ctchen222/tictactoe-hotseat/pkg/proto"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn feeds frames from a channel and records what the session writes.
type fakeConn struct {
	mu       sync.Mutex
	inbound  chan []byte
	written  []proto.ServerToClientMessage
	pings    int
	writeErr error
	closed   bool
	closeCh  chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan []byte, 16), closeCh: make(chan struct{})}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writeErr != nil {
		return c.writeErr
	}
	if messageType == websocket.PingMessage {
		c.pings++
		return nil
	}
	var msg proto.ServerToClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	c.written = append(c.written, msg)
	return nil
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case msg, ok := <-c.inbound:
		if !ok {
			return 0, nil, io.EOF
		}
		return websocket.TextMessage, msg, nil
	case <-c.closeCh:
		return 0, nil, errors.New("use of closed connection")
	}
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.closeCh)
	}
	return nil
}

func (c *fakeConn) messages() []proto.ServerToClientMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]proto.ServerToClientMessage(nil), c.written...)
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = nil
}

func (c *fakeConn) types() []string {
	var out []string
	for _, m := range c.messages() {
		out = append(out, m.Type)
	}
	return out
}

type fakeStore struct {
	mu      sync.Mutex
	saved   map[string]game.Snapshot
	deleted []string
	events  []events.Event
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]game.Snapshot)}
}

func (s *fakeStore) Save(_ context.Context, id string, snap game.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved[id] = snap
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	delete(s.saved, id)
	return s.err
}

func (s *fakeStore) Publish(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *fakeStore) eventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

func activate(pos int) []byte {
	return []byte(fmt.Sprintf(`{"type":"activate","position":%d}`, pos))
}

func newTestSession(t *testing.T) (*Session, *fakeConn, *fakeStore) {
	t.Helper()
	conn := newFakeConn()
	store := newFakeStore()
	return NewSession("s1", conn, store, time.Hour), conn, store
}

func TestSession_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Activate renders the mark and saves the snapshot", func(t *testing.T) {
		s, conn, store := newTestSession(t)

		s.HandleMessage(ctx, activate(4))

		msgs := conn.messages()
		require.Len(t, msgs, 3)
		require.Equal(t, proto.TypeRenderMark, msgs[0].Type)
		require.Equal(t, 4, *msgs[0].Position)
		require.Equal(t, game.PlayerX, msgs[0].Mark)
		require.Equal(t, proto.TypeCellTaken, msgs[1].Type)
		require.Equal(t, proto.ServerToClientMessage{Type: proto.TypeStatus, Text: "Player O's Turn"}, msgs[2])

		require.Equal(t, game.PlayerX, store.saved["s1"].Board[4])
	})

	t.Run("Second activation of a taken cell emits nothing", func(t *testing.T) {
		s, conn, _ := newTestSession(t)
		s.HandleMessage(ctx, activate(0))
		conn.reset()

		s.HandleMessage(ctx, activate(0))

		require.Empty(t, conn.messages())
		require.Equal(t, game.PlayerO, s.Snapshot().Current)
	})

	t.Run("Winning round publishes round_finished", func(t *testing.T) {
		s, conn, store := newTestSession(t)

		for _, p := range []int{0, 1, 3, 4, 6} {
			s.HandleMessage(ctx, activate(p))
		}

		msgs := conn.messages()
		last := msgs[len(msgs)-3:]
		require.Equal(t, proto.ServerToClientMessage{Type: proto.TypeStatus, Text: "Player X Wins!"}, last[0])
		require.Equal(t, proto.ServerToClientMessage{Type: proto.TypeScores, Scores: &game.Scores{X: 1}}, last[1])
		require.Equal(t, proto.ServerToClientMessage{Type: proto.TypeHighlight, Positions: []int{0, 3, 6}}, last[2])

		require.Equal(t, []string{events.TypeRoundFinished}, store.eventTypes())
		var payload events.RoundFinishedPayload
		require.NoError(t, json.Unmarshal(store.events[0].Payload, &payload))
		require.Equal(t, events.RoundFinishedPayload{
			SessionID: "s1",
			Outcome:   game.PhaseWon,
			Winner:    game.PlayerX,
			Cells:     []int{0, 3, 6},
			Scores:    game.Scores{X: 1},
		}, payload)
		require.Equal(t, game.PhaseWon, store.saved["s1"].Phase)
	})

	t.Run("Draw publishes round_finished without winner", func(t *testing.T) {
		s, conn, store := newTestSession(t)

		for _, p := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
			s.HandleMessage(ctx, activate(p))
		}

		assert.NotContains(t, conn.types(), proto.TypeHighlight)
		require.Len(t, store.events, 1)
		var payload events.RoundFinishedPayload
		require.NoError(t, json.Unmarshal(store.events[0].Payload, &payload))
		require.Equal(t, game.PhaseDraw, payload.Outcome)
		require.Empty(t, payload.Winner)
		require.Equal(t, game.Scores{Draw: 1}, payload.Scores)
	})

	t.Run("Reset by message and by key", func(t *testing.T) {
		for _, raw := range []string{`{"type":"reset"}`, `{"type":"key","key":"r"}`, `{"type":"key","key":"R"}`} {
			s, conn, _ := newTestSession(t)
			s.HandleMessage(ctx, activate(0))
			conn.reset()

			s.HandleMessage(ctx, []byte(raw))

			require.Equal(t, []string{proto.TypeClearBoard, proto.TypeStatus}, conn.types(), raw)
			require.Equal(t, game.Board{}, s.Snapshot().Board)
		}
	})

	t.Run("Other keys and bad frames are ignored", func(t *testing.T) {
		s, conn, store := newTestSession(t)

		for _, raw := range []string{
			`{"type":"key","key":"x"}`,
			`{"type":"key"}`,
			`{"type":"activate","position":9}`,
			`{"type":"activate","position":-1}`,
			`{"type":"activate"}`,
			`{"type":"dance"}`,
			`not json`,
		} {
			s.HandleMessage(ctx, []byte(raw))
		}

		require.Empty(t, conn.messages())
		require.Empty(t, store.saved)
	})

	t.Run("Store failures do not affect the game", func(t *testing.T) {
		s, conn, store := newTestSession(t)
		store.err = errors.New("redis down")

		for _, p := range []int{0, 1, 3, 4, 6} {
			s.HandleMessage(ctx, activate(p))
		}

		require.Equal(t, game.PhaseWon, s.Snapshot().Phase)
		require.Contains(t, conn.types(), proto.TypeHighlight)
	})
}

func TestSession_Lifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, conn, store := newTestSession(t)
	unregister := make(chan *Session, 1)

	go s.Start(ctx, unregister)

	conn.inbound <- activate(4)
	conn.inbound <- []byte(`{"type":"key","key":"r"}`)
	close(conn.inbound)

	select {
	case got := <-unregister:
		require.Same(t, s, got)
	case <-ctx.Done():
		t.Fatal("session did not unregister after the connection closed")
	}

	// opening paints the full view before any move
	types := conn.types()
	require.Equal(t, []string{proto.TypeClearBoard, proto.TypeScores, proto.TypeStatus}, types[:3])
	require.Contains(t, types, proto.TypeRenderMark)
	require.Equal(t, proto.TypeClearBoard, types[len(types)-2])

	require.Equal(t, []string{events.TypeSessionOpened, events.TypeSessionClosed}, store.eventTypes())
	require.Equal(t, []string{"s1"}, store.deleted)
	require.True(t, conn.closed)

	select {
	case <-s.Stopped():
	default:
		t.Fatal("Stopped channel not closed")
	}
}

func TestSession_StopsOnWriteFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, conn, _ := newTestSession(t)
	unregister := make(chan *Session, 1)

	go s.Start(ctx, unregister)

	conn.mu.Lock()
	conn.writeErr = errors.New("broken pipe")
	conn.mu.Unlock()
	conn.inbound <- activate(4)

	select {
	case <-unregister:
	case <-ctx.Done():
		t.Fatal("session kept running after a failed write")
	}
	require.True(t, conn.closed)
}

func TestSession_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _, store := newTestSession(t)
	unregister := make(chan *Session, 1)

	done := make(chan struct{})
	go func() {
		s.Start(ctx, unregister)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
	require.Equal(t, []string{"s1"}, store.deleted)
}
