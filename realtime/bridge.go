package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"taskhub/repositories"
)

// Bridge is the call path from the REST mutation handlers into the
// broadcast system. It is a best-effort side channel: every entry point
// swallows its own failures (logged, never returned), because the
// triggering mutation has already committed and its HTTP response must
// not be blocked or failed by a broadcast-side error.
//
// The bridge is constructed before the websocket gateway; until
// Bind is called it warns and drops, which is a normal start-up
// condition rather than a fault.
type Bridge struct {
	log   *slog.Logger
	teams repositories.ITeamRepository
	users repositories.IUserRepository

	mu      sync.RWMutex
	emitter *Emitter
}

func NewBridge(log *slog.Logger, teams repositories.ITeamRepository,
	users repositories.IUserRepository) *Bridge {
	return &Bridge{log: log, teams: teams, users: users}
}

// Bind attaches the live emitter once the realtime layer has started.
func (b *Bridge) Bind(emitter *Emitter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emitter = emitter
}

func (b *Bridge) boundEmitter(event EventName) (*Emitter, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.emitter == nil {
		b.log.Warn(fmt.Sprintf("realtime layer not started, dropping %s", event))
		return nil, false
	}
	return b.emitter, true
}

// BroadcastTaskEvent pushes a task mutation into the task's team room.
// An empty team id means a private, unshared task: no realtime traffic
// at all.
func (b *Bridge) BroadcastTaskEvent(teamID string, event EventName, payload TaskEventPayload) {
	emitter, ok := b.boundEmitter(event)
	if !ok {
		return
	}
	if teamID == "" {
		return
	}
	payload.Timestamp = time.Now().UTC()
	emitter.Broadcast(TeamRoom(teamID), event, payload)
	b.log.Debug(fmt.Sprintf("broadcast %s to room %s", event, TeamRoom(teamID)))
}

// BroadcastCommentEvent pushes a new comment into the room of the team
// owning the commented task. Same private-task rule as task events.
func (b *Bridge) BroadcastCommentEvent(teamID string, event EventName, payload CommentEventPayload) {
	emitter, ok := b.boundEmitter(event)
	if !ok {
		return
	}
	if teamID == "" {
		return
	}
	payload.Timestamp = time.Now().UTC()
	emitter.Broadcast(TeamRoom(teamID), event, payload)
	b.log.Debug(fmt.Sprintf("broadcast %s to room %s", event, TeamRoom(teamID)))
}

// BroadcastUserStatus announces an online/offline transition to every
// team room the user belongs to. Memberships and the public profile are
// re-resolved at emit time, not cached from connection time, so a
// membership granted mid-session is reflected here.
func (b *Bridge) BroadcastUserStatus(ctx context.Context, userID string, online bool) {
	event := EventUserOffline
	if online {
		event = EventUserOnline
	}

	emitter, ok := b.boundEmitter(event)
	if !ok {
		return
	}

	teamIDs, err := b.teams.FindTeamsForUser(ctx, userID)
	if err != nil {
		b.log.Error("membership lookup failed for status broadcast",
			"user_id", userID, "error", err)
		return
	}

	user, err := b.users.FindUserByID(ctx, userID)
	if err != nil {
		b.log.Error("profile lookup failed for status broadcast",
			"user_id", userID, "error", err)
		return
	}

	payload := UserStatusPayload{User: user, Timestamp: time.Now().UTC()}
	for _, teamID := range teamIDs {
		emitter.Broadcast(TeamRoom(teamID), event, payload)
	}
}
