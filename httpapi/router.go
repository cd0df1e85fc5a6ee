package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	s := &server{
		log:      d.Log,
		tokens:   d.Tokens,
		authSvc:  d.AuthService,
		users:    d.Users,
		teams:    d.Teams,
		tasks:    d.Tasks,
		comments: d.Comments,
		tags:     d.Tags,
		bridge:   d.Bridge,
	}

	// Persistent connections; authentication happens in-band via the
	// auth message, not through the bearer middleware.
	r.Handle("/ws", d.Realtime)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/users/me", s.handleGetMe)

			r.Post("/teams", s.handleCreateTeam)
			r.Get("/teams", s.handleListTeams)
			r.Get("/teams/{teamID}/members", s.handleListMembers)
			r.Post("/teams/{teamID}/members", s.handleAddMember)
			r.Delete("/teams/{teamID}/members/{userID}", s.handleRemoveMember)

			r.Post("/tasks", s.handleCreateTask)
			r.Get("/tasks", s.handleListTasks)
			r.Get("/tasks/{taskID}", s.handleGetTask)
			r.Put("/tasks/{taskID}", s.handleUpdateTask)
			r.Delete("/tasks/{taskID}", s.handleDeleteTask)

			r.Post("/tasks/{taskID}/comments", s.handleAddComment)
			r.Get("/tasks/{taskID}/comments", s.handleListComments)

			r.Post("/tags", s.handleCreateTag)
			r.Get("/tags", s.handleListTags)
			r.Put("/tags/{tagID}", s.handleUpdateTag)
			r.Delete("/tags/{tagID}", s.handleDeleteTag)
		})
	})

	return r
}
