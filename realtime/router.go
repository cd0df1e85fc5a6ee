package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskhub/auth"
	apperrors "taskhub/errors"
	"taskhub/repositories"

	"github.com/samber/lo"
)

// Presence is the slice of the bridge the router needs: fan a user's
// online/offline transition out to every team room they belong to.
type Presence interface {
	BroadcastUserStatus(ctx context.Context, userID string, online bool)
}

// Router mediates every mutation of the Registry driven by client
// messages. Join is gated by a fresh membership check so a stale or
// forged team id never grants access to a room carrying task data;
// leave is never gated.
type Router struct {
	log      *slog.Logger
	registry *Registry
	tokens   *auth.TokenService
	teams    repositories.ITeamRepository
	presence Presence
}

func NewRouter(log *slog.Logger, registry *Registry, tokens *auth.TokenService,
	teams repositories.ITeamRepository, presence Presence) *Router {
	return &Router{
		log:      log,
		registry: registry,
		tokens:   tokens,
		teams:    teams,
		presence: presence,
	}
}

// emitTo sends to one connection only, skipping silently if it
// disconnected in the meantime.
func (r *Router) emitTo(connID string, event EventName, payload any) {
	if conn := r.registry.connOf(connID); conn != nil {
		conn.Emit(ServerMessage{Type: event, Data: payload})
	}
}

// HandleAuthenticate verifies the token, marks the connection
// authenticated and joins it to one room per team the user belongs to.
// On any failure it emits auth_error and performs no join.
func (r *Router) HandleAuthenticate(ctx context.Context, connID string, payload AuthPayload) {
	if payload.Token == "" {
		r.emitTo(connID, EventAuthError, ErrorPayload{Message: "authentication token missing"})
		return
	}

	identity, err := r.tokens.Verify(payload.Token)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrExpiredToken):
			r.emitTo(connID, EventAuthError, ErrorPayload{Message: "authentication token expired"})
		default:
			r.emitTo(connID, EventAuthError, ErrorPayload{Message: "invalid authentication token"})
		}
		return
	}

	// A re-sent auth message simply overwrites the previous identity.
	if !r.registry.Authenticate(connID, identity.UserID, identity.Email) {
		// Connection closed while the message was in flight.
		return
	}

	teamIDs, err := r.teams.FindTeamsForUser(ctx, identity.UserID)
	if err != nil {
		r.log.Error("membership lookup failed during authentication",
			"connection_id", connID, "user_id", identity.UserID, "error", err)
		r.emitTo(connID, EventAuthError, ErrorPayload{Message: "authentication failed"})
		return
	}

	rooms := lo.Map(teamIDs, func(teamID string, _ int) string { return TeamRoom(teamID) })
	for _, room := range rooms {
		// Join may no-op if the client disconnected while we were
		// awaiting the membership query.
		r.registry.Join(connID, room)
	}

	r.log.Info(fmt.Sprintf("user %s authenticated, joined %d rooms", identity.Email, len(rooms)),
		"connection_id", connID)
	r.emitTo(connID, EventAuthSuccess, AuthSuccessPayload{
		UserID: identity.UserID,
		Email:  identity.Email,
		Rooms:  rooms,
	})

	r.presence.BroadcastUserStatus(ctx, identity.UserID, true)
}

// HandleJoinTeam joins an authenticated connection to one extra team
// room after re-checking membership at call time.
func (r *Router) HandleJoinTeam(ctx context.Context, connID string, payload JoinTeamPayload) {
	userID, email, ok := r.registry.Identity(connID)
	if !ok {
		r.emitTo(connID, EventError, ErrorPayload{Message: "not authenticated"})
		return
	}
	if payload.TeamID == "" {
		r.emitTo(connID, EventError, ErrorPayload{Message: "missing team id"})
		return
	}

	if _, err := r.teams.GetMember(ctx, payload.TeamID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotTeamMember) {
			r.emitTo(connID, EventError, ErrorPayload{Message: "not authorized for this room"})
			return
		}
		r.log.Error("membership lookup failed during join",
			"connection_id", connID, "team_id", payload.TeamID, "error", err)
		r.emitTo(connID, EventError, ErrorPayload{Message: "failed to join team room"})
		return
	}

	room := TeamRoom(payload.TeamID)
	r.registry.Join(connID, room)
	r.log.Info(fmt.Sprintf("user %s joined room %s", email, room))
	r.emitTo(connID, EventJoinTeamSuccess, JoinTeamSuccessPayload{
		TeamID: payload.TeamID,
		Room:   room,
	})
}

// HandleLeaveTeam leaves unconditionally; leaving is always safe, so no
// membership re-check is needed.
func (r *Router) HandleLeaveTeam(_ context.Context, connID string, payload LeaveTeamPayload) {
	_, email, ok := r.registry.Identity(connID)
	if !ok {
		r.emitTo(connID, EventError, ErrorPayload{Message: "not authenticated"})
		return
	}
	if payload.TeamID == "" {
		r.emitTo(connID, EventError, ErrorPayload{Message: "missing team id"})
		return
	}

	room := TeamRoom(payload.TeamID)
	r.registry.Leave(connID, room)
	r.log.Info(fmt.Sprintf("user %s left room %s", email, room))
	r.emitTo(connID, EventLeaveTeamSuccess, LeaveTeamSuccessPayload{
		TeamID: payload.TeamID,
		Room:   room,
	})
}

// HandleDisconnect drops all room memberships and, for sessions that
// had authenticated, broadcasts the offline notification.
func (r *Router) HandleDisconnect(ctx context.Context, connID string) {
	userID, wasAuthenticated := r.registry.Unregister(connID)
	r.log.Debug("connection closed", "connection_id", connID, "authenticated", wasAuthenticated)
	if wasAuthenticated {
		r.presence.BroadcastUserStatus(ctx, userID, false)
	}
}
