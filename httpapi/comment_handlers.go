package httpapi

import (
	"net/http"
	"strings"

	"taskhub/domain"
	"taskhub/realtime"
)

type addCommentRequest struct {
	Content string `json:"content"`
}

func (s *server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadVisibleTask(w, r)
	if !ok {
		return
	}

	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, "comment content is required")
		return
	}

	// Resolve @mentions against user names; unknown names are dropped.
	var mentioned []domain.PublicUser
	if names := domain.ParseMentions(content); len(names) > 0 {
		users, err := s.users.FindUsersByNames(r.Context(), names)
		if err != nil {
			s.log.Error("mention lookup failed", "task_id", task.ID, "error", err)
		} else {
			mentioned = users
		}
	}

	comment, err := s.comments.CreateComment(r.Context(), task.ID, userID(r.Context()), content)
	if err != nil {
		s.log.Error("comment creation failed", "task_id", task.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "comment creation failed")
		return
	}

	s.bridge.BroadcastCommentEvent(task.TeamID, realtime.EventCommentAdded,
		realtime.CommentEventPayload{
			Comment:  comment,
			TaskID:   task.ID,
			Mentions: mentioned,
		})

	writeJSON(w, http.StatusCreated, map[string]any{
		"comment":  comment,
		"mentions": mentioned,
	})
}

func (s *server) handleListComments(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadVisibleTask(w, r)
	if !ok {
		return
	}

	comments, err := s.comments.ListComments(r.Context(), task.ID)
	if err != nil {
		s.log.Error("comment listing failed", "task_id", task.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "comment listing failed")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
