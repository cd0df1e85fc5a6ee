package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskhub/domain"
	"taskhub/mocks"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type wireMessage struct {
	Type EventName       `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialGateway(t *testing.T, gateway *Gateway) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(gateway)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func readWire(t *testing.T, client *websocket.Conn) wireMessage {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wireMessage
	require.NoError(t, client.ReadJSON(&msg))
	return msg
}

func TestGateway_Auth_Join_And_Broadcast_Over_The_Wire(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := newTestTokens()
	registry := NewRegistry()
	teams := mocks.NewMockITeamRepository(ctrl)
	router := NewRouter(log, registry, tokens, teams, &fakePresence{})
	gateway := NewGateway(log, registry, router, 16, "*")

	queue := make(chan Outbound, 16)
	emitter := NewEmitter(log, registry, queue)
	startDispatcher(t, registry, queue)

	userID := uuid.NewString()
	teamID := uuid.NewString()
	teams.EXPECT().FindTeamsForUser(gomock.Any(), userID).
		Return([]string{teamID}, nil).Times(1)

	client := dialGateway(t, gateway)

	// When the client authenticates in-band
	token, err := tokens.Generate(userID, "ada@example.com")
	req.NoError(err)
	req.NoError(client.WriteJSON(map[string]any{
		"type": "auth",
		"data": map[string]string{"token": token},
	}))

	// Then auth_success lists the joined room
	msg := readWire(t, client)
	req.Equal(EventAuthSuccess, msg.Type)
	var authData AuthSuccessPayload
	req.NoError(json.Unmarshal(msg.Data, &authData))
	req.Equal(userID, authData.UserID)
	req.Equal([]string{TeamRoom(teamID)}, authData.Rooms)

	// When a task event is broadcast to that room
	emitter.Broadcast(TeamRoom(teamID), EventTaskCreated,
		TaskEventPayload{Task: &domain.Task{ID: "42", Title: "ship it", TeamID: teamID}})

	// Then the client receives it over the wire
	msg = readWire(t, client)
	req.Equal(EventTaskCreated, msg.Type)
	var taskData TaskEventPayload
	req.NoError(json.Unmarshal(msg.Data, &taskData))
	req.NotNil(taskData.Task)
	req.Equal("42", taskData.Task.ID)
}

func TestGateway_Unsupported_Message_Type_Is_Answered(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	teams := mocks.NewMockITeamRepository(ctrl)
	router := NewRouter(log, registry, newTestTokens(), teams, &fakePresence{})
	gateway := NewGateway(log, registry, router, 16, "*")

	client := dialGateway(t, gateway)

	// When the client sends a type outside the protocol
	req.NoError(client.WriteJSON(map[string]any{"type": "subscribe", "data": map[string]string{}}))

	// Then it is answered with an error event, not silence
	msg := readWire(t, client)
	req.Equal(EventError, msg.Type)
	var errData ErrorPayload
	req.NoError(json.Unmarshal(msg.Data, &errData))
	req.Equal(fmt.Sprintf("unsupported message type %q", "subscribe"), errData.Message)
}

func TestGateway_Malformed_Envelope_Is_Answered(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	teams := mocks.NewMockITeamRepository(ctrl)
	router := NewRouter(log, registry, newTestTokens(), teams, &fakePresence{})
	gateway := NewGateway(log, registry, router, 16, "*")

	client := dialGateway(t, gateway)

	// When the client sends bytes that are not a JSON envelope
	req.NoError(client.WriteMessage(websocket.TextMessage, []byte("not json")))

	// Then
	msg := readWire(t, client)
	req.Equal(EventError, msg.Type)
	var errData ErrorPayload
	req.NoError(json.Unmarshal(msg.Data, &errData))
	req.Equal("malformed message", errData.Message)
}

func TestGateway_Disconnect_Unregisters_The_Connection(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	teams := mocks.NewMockITeamRepository(ctrl)
	router := NewRouter(log, registry, newTestTokens(), teams, &fakePresence{})
	gateway := NewGateway(log, registry, router, 16, "*")

	client := dialGateway(t, gateway)

	// Given the connection is registered
	req.Eventually(func() bool {
		registry.mu.RLock()
		defer registry.mu.RUnlock()
		return len(registry.sessions) == 1
	}, time.Second, 10*time.Millisecond)

	// When the client closes the socket
	req.NoError(client.Close())

	// Then the registry forgets it
	req.Eventually(func() bool {
		registry.mu.RLock()
		defer registry.mu.RUnlock()
		return len(registry.sessions) == 0
	}, time.Second, 10*time.Millisecond)
}
