package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"ideaboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeratorRoutes_RequireModerator(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)
	idea := seedTestIdea(t, db, models.IdeaStatusApproved)

	// Content managers share a privilege level with moderators but not the
	// deletion capability.
	for _, role := range []models.Role{models.RoleGuest, models.RoleUser, models.RoleContentManager} {
		t.Run(string(role), func(t *testing.T) {
			var identity *models.Identity
			if role != models.RoleGuest {
				identity = seedIdentity(t, db, role)
			}
			resp, err := app.Test(newRequest(http.MethodDelete,
				fmt.Sprintf("/api/moderator/ideas/%d", idea.ID), "", identity))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestDeleteIdea_CascadesOverComments(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)
	moderator := seedIdentity(t, db, models.RoleModerator)
	idea := seedTestIdea(t, db, models.IdeaStatusApproved)

	require.NoError(t, db.Create(&models.Comment{
		IdeaID: idea.ID,
		Author: "sam",
		Text:   "great idea",
	}).Error)

	resp, err := app.Test(newRequest(http.MethodDelete,
		fmt.Sprintf("/api/moderator/ideas/%d", idea.ID), "", moderator))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The idea no longer resolves, even for elevated roles.
	getResp, err := app.Test(newRequest(http.MethodGet,
		fmt.Sprintf("/api/ideas/%d", idea.ID), "", moderator))
	require.NoError(t, err)
	defer func() { _ = getResp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)

	var comment models.Comment
	require.NoError(t, db.First(&comment, "idea_id = ?", idea.ID).Error)
	assert.True(t, comment.IsDeleted)
	require.NotNil(t, comment.DeletedBy)
	assert.Equal(t, moderator.ID, *comment.DeletedBy)
}

func TestDeleteIdea_Missing(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)
	moderator := seedIdentity(t, db, models.RoleModerator)

	resp, err := app.Test(newRequest(http.MethodDelete, "/api/moderator/ideas/9999", "", moderator))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteComment_Idempotent(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)
	moderator := seedIdentity(t, db, models.RoleModerator)
	idea := seedTestIdea(t, db, models.IdeaStatusApproved)

	comment := &models.Comment{IdeaID: idea.ID, Author: "sam", Text: "noted"}
	require.NoError(t, db.Create(comment).Error)

	target := fmt.Sprintf("/api/moderator/comments/%d", comment.ID)

	first, err := app.Test(newRequest(http.MethodDelete, target, "", moderator))
	require.NoError(t, err)
	defer func() { _ = first.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, first.StatusCode)

	// Deleting again is a no-op, not an error.
	second, err := app.Test(newRequest(http.MethodDelete, target, "", moderator))
	require.NoError(t, err)
	defer func() { _ = second.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, second.StatusCode)
}

func TestGetAllComments_IncludesDeleted(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)
	moderator := seedIdentity(t, db, models.RoleModerator)
	idea := seedTestIdea(t, db, models.IdeaStatusApproved)

	require.NoError(t, db.Create(&models.Comment{IdeaID: idea.ID, Author: "a", Text: "live"}).Error)
	require.NoError(t, db.Create(&models.Comment{IdeaID: idea.ID, Author: "b", Text: "gone", IsDeleted: true}).Error)

	resp, err := app.Test(newRequest(http.MethodGet, "/api/moderator/comments", "", moderator))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&comments))
	assert.Len(t, comments, 2)
}
