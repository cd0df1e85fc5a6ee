// MockBroadcaster is generated into its own package: the repository
// mocks in taskhub/mocks are shared with the realtime tests, and a
// realtime import there would cycle through the realtime test binary.
//
//go:generate go run go.uber.org/mock/mockgen -source=httpapi.go -destination=../mocks/httpapimocks/mock_broadcaster.go -package=httpapimocks
package httpapi

import (
	"log/slog"

	"taskhub/auth"
	"taskhub/realtime"
	"taskhub/repositories"
	"taskhub/services"
)

// Broadcaster is the slice of the realtime bridge the mutation handlers
// call after a commit. Calls are fire-and-forget: they return nothing,
// so a broadcast-side failure can never leak into the HTTP response.
type Broadcaster interface {
	BroadcastTaskEvent(teamID string, event realtime.EventName, payload realtime.TaskEventPayload)
	BroadcastCommentEvent(teamID string, event realtime.EventName, payload realtime.CommentEventPayload)
}

type Deps struct {
	Log         *slog.Logger
	Tokens      *auth.TokenService
	AuthService services.IAuthService
	Users       repositories.IUserRepository
	Teams       repositories.ITeamRepository
	Tasks       repositories.ITaskRepository
	Comments    repositories.ICommentRepository
	Tags        repositories.ITagRepository
	Bridge      Broadcaster
	Realtime    *realtime.Gateway
}

type server struct {
	log      *slog.Logger
	tokens   *auth.TokenService
	authSvc  services.IAuthService
	users    repositories.IUserRepository
	teams    repositories.ITeamRepository
	tasks    repositories.ITaskRepository
	comments repositories.ICommentRepository
	tags     repositories.ITagRepository
	bridge   Broadcaster
}
