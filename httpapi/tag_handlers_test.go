package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub/domain"
	apperrors "taskhub/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateTag_Team_Tag_Requires_Membership(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	callerID := uuid.NewString()
	teamID := uuid.NewString()
	created := domain.Tag{ID: uuid.NewString(), Name: "urgent", Color: "#FF0000", TeamID: teamID}

	// Given the caller is a member of the target team
	m.teams.EXPECT().GetMember(gomock.Any(), teamID, callerID).
		Return(domain.TeamMember{TeamID: teamID, UserID: callerID, Role: domain.RoleMember}, nil).Times(1)
	m.tags.EXPECT().CreateTag(gomock.Any(), "urgent", "#FF0000", teamID).
		Return(created, nil).Times(1)

	// When
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodPost, "/api/tags",
		map[string]string{"name": "  urgent  ", "color": "#FF0000", "teamId": teamID}))

	// Then the name is stored trimmed
	req.Equal(http.StatusCreated, rec.Code)
	var got domain.Tag
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	req.Equal(created.ID, got.ID)
	req.Equal("urgent", got.Name)
}

func TestCreateTag_Rejects_Bad_Name_And_Color(t *testing.T) {
	req := require.New(t)
	handler, _, tokens := newTestAPI(t)
	callerID := uuid.NewString()

	// When the name is blank
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodPost, "/api/tags",
		map[string]string{"name": "   "}))

	// Then the repository is never reached
	req.Equal(http.StatusBadRequest, rec.Code)

	// When the color is not #RRGGBB
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodPost, "/api/tags",
		map[string]string{"name": "urgent", "color": "red"}))

	// Then
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestCreateTag_Duplicate_Name_In_Team_Conflicts(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	callerID := uuid.NewString()
	teamID := uuid.NewString()

	m.teams.EXPECT().GetMember(gomock.Any(), teamID, callerID).
		Return(domain.TeamMember{TeamID: teamID, UserID: callerID, Role: domain.RoleMember}, nil).Times(1)
	m.tags.EXPECT().CreateTag(gomock.Any(), "urgent", "", teamID).
		Return(domain.Tag{}, apperrors.ErrTagAlreadyExists).Times(1)

	// When a sibling tag already carries the name
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodPost, "/api/tags",
		map[string]string{"name": "urgent", "teamId": teamID}))

	// Then
	req.Equal(http.StatusConflict, rec.Code)
}

func TestListTags_Defaults_To_All_Memberships(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	callerID := uuid.NewString()
	teamA := uuid.NewString()
	teamB := uuid.NewString()

	// Given the caller belongs to two teams, without a teamId filter
	m.teams.EXPECT().FindTeamsForUser(gomock.Any(), callerID).
		Return([]string{teamA, teamB}, nil).Times(1)
	m.tags.EXPECT().ListTags(gomock.Any(), []string{teamA, teamB}).
		Return([]domain.Tag{
			{ID: uuid.NewString(), Name: "urgent", TeamID: teamA},
			{ID: uuid.NewString(), Name: "blocked", TeamID: teamB},
		}, nil).Times(1)

	// When
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodGet, "/api/tags", nil))

	// Then
	req.Equal(http.StatusOK, rec.Code)
	var got []domain.Tag
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	req.Len(got, 2)
}

func TestListTags_No_Memberships_Returns_Empty_List(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	callerID := uuid.NewString()

	m.teams.EXPECT().FindTeamsForUser(gomock.Any(), callerID).
		Return(nil, nil).Times(1)
	m.tags.EXPECT().ListTags(gomock.Any(), gomock.Nil()).
		Return(nil, nil).Times(1)

	// When
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodGet, "/api/tags", nil))

	// Then an empty JSON array, never null
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq("[]", rec.Body.String())
}

func TestListTags_Team_Filter_Requires_Membership(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	callerID := uuid.NewString()
	teamID := uuid.NewString()

	// Given the caller is not a member of the filtered team
	m.teams.EXPECT().GetMember(gomock.Any(), teamID, callerID).
		Return(domain.TeamMember{}, apperrors.ErrNotTeamMember).Times(1)

	// When
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodGet, "/api/tags?teamId="+teamID, nil))

	// Then
	req.Equal(http.StatusForbidden, rec.Code)
}

func TestUpdateTag_Rename_Collision_In_Team_Conflicts(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	callerID := uuid.NewString()
	teamID := uuid.NewString()
	tag := domain.Tag{ID: uuid.NewString(), Name: "urgent", TeamID: teamID}

	m.tags.EXPECT().GetTag(gomock.Any(), tag.ID).Return(tag, nil).Times(1)
	m.teams.EXPECT().GetMember(gomock.Any(), teamID, callerID).
		Return(domain.TeamMember{TeamID: teamID, UserID: callerID, Role: domain.RoleMember}, nil).Times(1)

	// Given a sibling tag already carries the new name
	m.tags.EXPECT().ListTags(gomock.Any(), []string{teamID}).
		Return([]domain.Tag{tag, {ID: uuid.NewString(), Name: "blocked", TeamID: teamID}}, nil).Times(1)

	// When the tag is renamed onto the sibling's name
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodPut, "/api/tags/"+tag.ID,
		map[string]string{"name": "blocked"}))

	// Then the update never reaches the repository
	req.Equal(http.StatusConflict, rec.Code)
}

func TestUpdateTag_Color_Change_Skips_Sibling_Scan(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	callerID := uuid.NewString()
	teamID := uuid.NewString()
	tag := domain.Tag{ID: uuid.NewString(), Name: "urgent", Color: "#FF0000", TeamID: teamID}
	updated := tag
	updated.Color = "#00FF00"

	m.tags.EXPECT().GetTag(gomock.Any(), tag.ID).Return(tag, nil).Times(1)
	m.teams.EXPECT().GetMember(gomock.Any(), teamID, callerID).
		Return(domain.TeamMember{TeamID: teamID, UserID: callerID, Role: domain.RoleMember}, nil).Times(1)

	// The name is unchanged; no sibling listing may happen
	m.tags.EXPECT().UpdateTag(gomock.Any(), updated).Return(updated, nil).Times(1)

	// When
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodPut, "/api/tags/"+tag.ID,
		map[string]string{"name": "urgent", "color": "#00FF00"}))

	// Then
	req.Equal(http.StatusOK, rec.Code)
	var got domain.Tag
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	req.Equal("#00FF00", got.Color)
}

func TestDeleteTag_Unknown_Tag_Is_Not_Found(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	tagID := uuid.NewString()
	m.tags.EXPECT().GetTag(gomock.Any(), tagID).
		Return(domain.Tag{}, apperrors.ErrNotFound).Times(1)

	// When
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, uuid.NewString(), http.MethodDelete, "/api/tags/"+tagID, nil))

	// Then
	req.Equal(http.StatusNotFound, rec.Code)
}

func TestDeleteTag_Team_Tag_Requires_Membership(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	callerID := uuid.NewString()
	teamID := uuid.NewString()
	tag := domain.Tag{ID: uuid.NewString(), Name: "urgent", TeamID: teamID}

	m.tags.EXPECT().GetTag(gomock.Any(), tag.ID).Return(tag, nil).Times(1)
	m.teams.EXPECT().GetMember(gomock.Any(), teamID, callerID).
		Return(domain.TeamMember{}, apperrors.ErrNotTeamMember).Times(1)

	// When a non-member tries to delete a team tag
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, callerID, http.MethodDelete, "/api/tags/"+tag.ID, nil))

	// Then
	req.Equal(http.StatusForbidden, rec.Code)
}
