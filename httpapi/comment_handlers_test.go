package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub/domain"
	"taskhub/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAddComment_Resolves_Mentions_And_Broadcasts(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	authorID := uuid.NewString()
	teamID := uuid.NewString()
	task := domain.Task{
		ID:        uuid.NewString(),
		Title:     "ship it",
		CreatorID: authorID,
		TeamID:    teamID,
	}
	content := "looks good @ada, @grace please double-check"
	mentioned := []domain.PublicUser{
		{ID: uuid.NewString(), Email: "ada@example.com", Name: "ada"},
		{ID: uuid.NewString(), Email: "grace@example.com", Name: "grace"},
	}
	comment := domain.Comment{
		ID:      uuid.NewString(),
		TaskID:  task.ID,
		UserID:  authorID,
		Content: content,
	}

	m.tasks.EXPECT().GetTask(gomock.Any(), task.ID).Return(task, nil).Times(1)
	m.users.EXPECT().FindUsersByNames(gomock.Any(), []string{"ada", "grace"}).
		Return(mentioned, nil).Times(1)
	m.comments.EXPECT().CreateComment(gomock.Any(), task.ID, authorID, content).
		Return(comment, nil).Times(1)

	// The comment event goes to the team room with the resolved mentions
	m.bridge.EXPECT().
		BroadcastCommentEvent(teamID, realtime.EventCommentAdded, gomock.Any()).
		Do(func(_ string, _ realtime.EventName, payload realtime.CommentEventPayload) {
			require.Equal(t, comment.ID, payload.Comment.ID)
			require.Equal(t, task.ID, payload.TaskID)
			require.Equal(t, mentioned, payload.Mentions)
		}).Times(1)

	// When
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, authorID, http.MethodPost,
		"/api/tasks/"+task.ID+"/comments", map[string]string{"content": content}))

	// Then the response echoes the comment and its mentions
	req.Equal(http.StatusCreated, rec.Code)
	var body struct {
		Comment  domain.Comment      `json:"comment"`
		Mentions []domain.PublicUser `json:"mentions"`
	}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.Equal(comment.ID, body.Comment.ID)
	req.Len(body.Mentions, 2)
}

func TestAddComment_Rejects_Blank_Content(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	authorID := uuid.NewString()
	task := domain.Task{ID: uuid.NewString(), Title: "ship it", CreatorID: authorID}

	m.tasks.EXPECT().GetTask(gomock.Any(), task.ID).Return(task, nil).Times(1)

	// When the comment body is whitespace only
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, authorID, http.MethodPost,
		"/api/tasks/"+task.ID+"/comments", map[string]string{"content": "   "}))

	// Then
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestAddComment_Mention_Lookup_Failure_Is_Swallowed(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	authorID := uuid.NewString()
	task := domain.Task{ID: uuid.NewString(), Title: "ship it", CreatorID: authorID}
	content := "ping @ada"
	comment := domain.Comment{ID: uuid.NewString(), TaskID: task.ID, UserID: authorID, Content: content}

	m.tasks.EXPECT().GetTask(gomock.Any(), task.ID).Return(task, nil).Times(1)
	m.users.EXPECT().FindUsersByNames(gomock.Any(), []string{"ada"}).
		Return(nil, context.DeadlineExceeded).Times(1)
	m.comments.EXPECT().CreateComment(gomock.Any(), task.ID, authorID, content).
		Return(comment, nil).Times(1)
	m.bridge.EXPECT().
		BroadcastCommentEvent(task.TeamID, realtime.EventCommentAdded, gomock.Any()).Times(1)

	// When the mention lookup fails
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, authorID, http.MethodPost,
		"/api/tasks/"+task.ID+"/comments", map[string]string{"content": content}))

	// Then the comment is still created, just without mentions
	req.Equal(http.StatusCreated, rec.Code)
	var body struct {
		Mentions []domain.PublicUser `json:"mentions"`
	}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.Empty(body.Mentions)
}
