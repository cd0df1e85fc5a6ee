package httpapi

import (
	"errors"
	"net/http"
	"time"

	"taskhub/domain"
	apperrors "taskhub/errors"
	"taskhub/realtime"
	"taskhub/repositories"

	"github.com/go-chi/chi/v5"
)

type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  string     `json:"assigneeId"`
	TeamID      string     `json:"teamId"`
}

// validateTaskRequest applies the shared create/update rules and fills
// in defaults. It writes the HTTP error itself on failure.
func (s *server) validateTaskRequest(w http.ResponseWriter, r *http.Request, req *taskRequest) bool {
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "task title is required")
		return false
	}
	if req.Status == "" {
		req.Status = string(domain.StatusPending)
	}
	if !domain.TaskStatus(req.Status).Valid() {
		writeError(w, http.StatusBadRequest, "invalid task status")
		return false
	}
	if req.Priority == "" {
		req.Priority = string(domain.PriorityMedium)
	}
	if !domain.TaskPriority(req.Priority).Valid() {
		writeError(w, http.StatusBadRequest, "invalid task priority")
		return false
	}
	// A shared task may only be filed under a team the caller belongs to.
	if req.TeamID != "" {
		if _, ok := s.requireMember(w, r, req.TeamID); !ok {
			return false
		}
	}
	return true
}

func (s *server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.validateTaskRequest(w, r, &req) {
		return
	}

	task, err := s.tasks.CreateTask(r.Context(), domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		CreatorID:   userID(r.Context()),
		AssigneeID:  req.AssigneeID,
		TeamID:      req.TeamID,
	})
	if err != nil {
		s.log.Error("task creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "task creation failed")
		return
	}

	// Best-effort side channel: the mutation has committed, the
	// broadcast outcome is structurally discarded.
	s.bridge.BroadcastTaskEvent(task.TeamID, realtime.EventTaskCreated,
		realtime.TaskEventPayload{Task: &task})

	writeJSON(w, http.StatusCreated, task)
}

func (s *server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.TaskFilter{
		Status:     domain.TaskStatus(q.Get("status")),
		Priority:   domain.TaskPriority(q.Get("priority")),
		AssigneeID: q.Get("assigneeId"),
		CreatorID:  q.Get("creatorId"),
		TeamID:     q.Get("teamId"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid task status")
		return
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "invalid task priority")
		return
	}

	tasks, err := s.tasks.ListTasksForUser(r.Context(), userID(r.Context()), filter)
	if err != nil {
		s.log.Error("task listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "task listing failed")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// loadVisibleTask fetches a task and checks the caller may see it:
// creator, assignee, or member of the owning team.
func (s *server) loadVisibleTask(w http.ResponseWriter, r *http.Request) (domain.Task, bool) {
	task, err := s.tasks.GetTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return domain.Task{}, false
		}
		s.log.Error("task lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "task lookup failed")
		return domain.Task{}, false
	}

	uid := userID(r.Context())
	if task.CreatorID == uid || task.AssigneeID == uid {
		return task, true
	}
	if task.Shared() {
		if _, err := s.teams.GetMember(r.Context(), task.TeamID, uid); err == nil {
			return task, true
		}
	}
	writeError(w, http.StatusForbidden, "no access to this task")
	return domain.Task{}, false
}

func (s *server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadVisibleTask(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadVisibleTask(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.validateTaskRequest(w, r, &req) {
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Status = domain.TaskStatus(req.Status)
	task.Priority = domain.TaskPriority(req.Priority)
	task.DueDate = req.DueDate
	task.AssigneeID = req.AssigneeID
	task.TeamID = req.TeamID

	updated, err := s.tasks.UpdateTask(r.Context(), task)
	if err != nil {
		s.log.Error("task update failed", "task_id", task.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "task update failed")
		return
	}

	s.bridge.BroadcastTaskEvent(updated.TeamID, realtime.EventTaskUpdated,
		realtime.TaskEventPayload{Task: &updated})

	writeJSON(w, http.StatusOK, updated)
}

func (s *server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadVisibleTask(w, r)
	if !ok {
		return
	}
	if task.CreatorID != userID(r.Context()) {
		writeError(w, http.StatusForbidden, "only the creator can delete a task")
		return
	}

	if err := s.tasks.DeleteTask(r.Context(), task.ID); err != nil {
		s.log.Error("task deletion failed", "task_id", task.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "task deletion failed")
		return
	}

	s.bridge.BroadcastTaskEvent(task.TeamID, realtime.EventTaskDeleted,
		realtime.TaskEventPayload{TaskID: task.ID})

	w.WriteHeader(http.StatusNoContent)
}
