package httpapi

import (
	"errors"
	"net/http"

	"taskhub/domain"
	apperrors "taskhub/errors"

	"github.com/go-chi/chi/v5"
)

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "team name is required")
		return
	}

	team, err := s.teams.CreateTeam(r.Context(), req.Name, req.Description, userID(r.Context()))
	if err != nil {
		s.log.Error("team creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "team creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (s *server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.ListTeamsForUser(r.Context(), userID(r.Context()))
	if err != nil {
		s.log.Error("team listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "team listing failed")
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// requireMember loads the caller's membership in a team, writing the
// HTTP error itself when there is none.
func (s *server) requireMember(w http.ResponseWriter, r *http.Request, teamID string) (domain.TeamMember, bool) {
	member, err := s.teams.GetMember(r.Context(), teamID, userID(r.Context()))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotTeamMember) {
			writeError(w, http.StatusForbidden, "not a member of this team")
			return domain.TeamMember{}, false
		}
		s.log.Error("membership lookup failed", "team_id", teamID, "error", err)
		writeError(w, http.StatusInternalServerError, "membership lookup failed")
		return domain.TeamMember{}, false
	}
	return member, true
}

func (s *server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if _, ok := s.requireMember(w, r, teamID); !ok {
		return
	}

	members, err := s.teams.ListMembers(r.Context(), teamID)
	if err != nil {
		s.log.Error("member listing failed", "team_id", teamID, "error", err)
		writeError(w, http.StatusInternalServerError, "member listing failed")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

type addMemberRequest struct {
	Email string          `json:"email"`
	Role  domain.TeamRole `json:"role"`
}

func (s *server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	member, ok := s.requireMember(w, r, teamID)
	if !ok {
		return
	}
	if !member.Role.CanManageMembers() {
		writeError(w, http.StatusForbidden, "only owners and admins can manage members")
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "member email is required")
		return
	}
	role := req.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}
	// Ownership is established at team creation and never granted here.
	if role == domain.RoleOwner {
		role = domain.RoleMember
	}

	user, err := s.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no user with this email")
			return
		}
		s.log.Error("user lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "user lookup failed")
		return
	}

	if err := s.teams.AddMember(r.Context(), teamID, user.ID, role); err != nil {
		s.log.Error("adding member failed", "team_id", teamID, "error", err)
		writeError(w, http.StatusInternalServerError, "adding member failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"teamId": teamID,
		"userId": user.ID,
		"role":   string(role),
	})
}

func (s *server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	targetID := chi.URLParam(r, "userID")

	member, ok := s.requireMember(w, r, teamID)
	if !ok {
		return
	}
	// Members may leave on their own; removing someone else requires
	// owner or admin.
	if targetID != member.UserID && !member.Role.CanManageMembers() {
		writeError(w, http.StatusForbidden, "only owners and admins can manage members")
		return
	}

	target, err := s.teams.GetMember(r.Context(), teamID, targetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotTeamMember) {
			writeError(w, http.StatusNotFound, "no such member")
			return
		}
		s.log.Error("membership lookup failed", "team_id", teamID, "error", err)
		writeError(w, http.StatusInternalServerError, "membership lookup failed")
		return
	}
	if target.Role == domain.RoleOwner {
		writeError(w, http.StatusForbidden, "the team owner cannot be removed")
		return
	}

	if err := s.teams.RemoveMember(r.Context(), teamID, targetID); err != nil {
		s.log.Error("removing member failed", "team_id", teamID, "error", err)
		writeError(w, http.StatusInternalServerError, "removing member failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
