package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"taskhub/domain"
	apperrors "taskhub/errors"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type tagRequest struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	TeamID string `json:"teamId"`
}

// validateTagRequest applies the shared create/update rules. It writes
// the HTTP error itself on failure.
func (s *server) validateTagRequest(w http.ResponseWriter, req *tagRequest) bool {
	req.Name = strings.TrimSpace(req.Name)
	if !domain.ValidTagName(req.Name) {
		writeError(w, http.StatusBadRequest, "tag name must be 1 to 50 characters")
		return false
	}
	if !domain.ValidTagColor(req.Color) {
		writeError(w, http.StatusBadRequest, "tag color must be a #RRGGBB value")
		return false
	}
	return true
}

func (s *server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.validateTagRequest(w, &req) {
		return
	}
	// A team tag may only be filed under a team the caller belongs to.
	if req.TeamID != "" {
		if _, ok := s.requireMember(w, r, req.TeamID); !ok {
			return
		}
	}

	tag, err := s.tags.CreateTag(r.Context(), req.Name, req.Color, req.TeamID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTagAlreadyExists) {
			writeError(w, http.StatusConflict, "a tag with this name already exists in the team")
			return
		}
		s.log.Error("tag creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "tag creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (s *server) handleListTags(w http.ResponseWriter, r *http.Request) {
	var teamIDs []string
	if teamID := r.URL.Query().Get("teamId"); teamID != "" {
		if _, ok := s.requireMember(w, r, teamID); !ok {
			return
		}
		teamIDs = []string{teamID}
	} else {
		ids, err := s.teams.FindTeamsForUser(r.Context(), userID(r.Context()))
		if err != nil {
			s.log.Error("membership lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "tag listing failed")
			return
		}
		teamIDs = ids
	}

	tags, err := s.tags.ListTags(r.Context(), teamIDs)
	if err != nil {
		s.log.Error("tag listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "tag listing failed")
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

// loadVisibleTag fetches a tag and checks the caller may touch it: any
// member for a team tag, anyone for a team-less one.
func (s *server) loadVisibleTag(w http.ResponseWriter, r *http.Request) (domain.Tag, bool) {
	tag, err := s.tags.GetTag(r.Context(), chi.URLParam(r, "tagID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writeError(w, http.StatusNotFound, "tag not found")
			return domain.Tag{}, false
		}
		s.log.Error("tag lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "tag lookup failed")
		return domain.Tag{}, false
	}
	if tag.TeamID != "" {
		if _, ok := s.requireMember(w, r, tag.TeamID); !ok {
			return domain.Tag{}, false
		}
	}
	return tag, true
}

func (s *server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	tag, ok := s.loadVisibleTag(w, r)
	if !ok {
		return
	}

	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.validateTagRequest(w, &req) {
		return
	}

	// Renaming inside a team must not collide with a sibling tag.
	if tag.TeamID != "" && req.Name != tag.Name {
		siblings, err := s.tags.ListTags(r.Context(), []string{tag.TeamID})
		if err != nil {
			s.log.Error("tag listing failed", "team_id", tag.TeamID, "error", err)
			writeError(w, http.StatusInternalServerError, "tag update failed")
			return
		}
		if lo.ContainsBy(siblings, func(t domain.Tag) bool {
			return t.ID != tag.ID && t.Name == req.Name
		}) {
			writeError(w, http.StatusConflict, "a tag with this name already exists in the team")
			return
		}
	}

	tag.Name = req.Name
	tag.Color = req.Color

	updated, err := s.tags.UpdateTag(r.Context(), tag)
	if err != nil {
		s.log.Error("tag update failed", "tag_id", tag.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "tag update failed")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	tag, ok := s.loadVisibleTag(w, r)
	if !ok {
		return
	}

	if err := s.tags.DeleteTag(r.Context(), tag.ID); err != nil {
		s.log.Error("tag deletion failed", "tag_id", tag.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "tag deletion failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
