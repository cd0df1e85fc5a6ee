package realtime

import (
	"encoding/json"
	"time"

	"taskhub/domain"
)

// MessageType enumerates the client-to-server messages. The transport
// decodes the envelope and dispatches with an exhaustive switch; an
// unknown type is answered with an error event instead of being
// silently ignored.
type MessageType string

const (
	MessageAuth      MessageType = "auth"
	MessageJoinTeam  MessageType = "join_team"
	MessageLeaveTeam MessageType = "leave_team"
)

// EventName enumerates the server-to-client events.
type EventName string

const (
	EventAuthSuccess      EventName = "auth_success"
	EventAuthError        EventName = "auth_error"
	EventError            EventName = "error"
	EventJoinTeamSuccess  EventName = "join_team_success"
	EventLeaveTeamSuccess EventName = "leave_team_success"
	EventTaskCreated      EventName = "task:created"
	EventTaskUpdated      EventName = "task:updated"
	EventTaskDeleted      EventName = "task:deleted"
	EventCommentAdded     EventName = "comment:added"
	EventUserOnline       EventName = "user:online"
	EventUserOffline      EventName = "user:offline"
)

// TeamRoom derives the broadcast room for a team. The value is an
// internal identifier; it leaves the server only as the echo inside
// auth_success / join_team_success acknowledgments.
func TeamRoom(teamID string) string {
	return "team:" + teamID
}

// ClientMessage is the envelope read off the wire. Data stays raw until
// the type is known.
type ClientMessage struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

type AuthPayload struct {
	Token string `json:"token"`
}

type JoinTeamPayload struct {
	TeamID string `json:"teamId"`
}

type LeaveTeamPayload struct {
	TeamID string `json:"teamId"`
}

// ServerMessage is the envelope written to the wire.
type ServerMessage struct {
	Type EventName `json:"type"`
	Data any       `json:"data"`
}

type AuthSuccessPayload struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Rooms  []string `json:"rooms"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type JoinTeamSuccessPayload struct {
	TeamID string `json:"teamId"`
	Room   string `json:"room"`
}

type LeaveTeamSuccessPayload struct {
	TeamID string `json:"teamId"`
	Room   string `json:"room"`
}

// TaskEventPayload carries the full task for task:created/task:updated
// and only the id for task:deleted.
type TaskEventPayload struct {
	Task      *domain.Task `json:"task,omitempty"`
	TaskID    string       `json:"taskId,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

type CommentEventPayload struct {
	Comment   domain.Comment      `json:"comment"`
	TaskID    string              `json:"taskId"`
	Mentions  []domain.PublicUser `json:"mentions,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

type UserStatusPayload struct {
	User      domain.PublicUser `json:"user"`
	Timestamp time.Time         `json:"timestamp"`
}
