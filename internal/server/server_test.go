package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ideaboard/internal/config"
	"ideaboard/internal/models"
	"ideaboard/internal/repository"
	"ideaboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Identity{},
		&models.InvitationCode{},
		&models.Idea{},
		&models.Comment{},
		&models.Vote{},
	))

	return db
}

// newTestServer builds a Server over an in-memory sqlite DB with the full
// route table mounted but no prometheus/limiter wiring.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db := setupServerTestDB(t)

	identityRepo := repository.NewIdentityRepository(db)
	inviteRepo := repository.NewInvitationRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config: &config.Config{
			SessionCookieName: "session_token",
			SessionMaxAgeDays: 30,
		},
		db:           db,
		identityRepo: identityRepo,
		inviteRepo:   inviteRepo,
		ideaRepo:     ideaRepo,
		commentRepo:  commentRepo,
	}
	s.identityService = service.NewIdentityService(identityRepo, inviteRepo)
	s.ideaService = service.NewIdeaService(ideaRepo)
	s.commentService = service.NewCommentService(commentRepo, ideaRepo)
	s.moderationService = service.NewModerationService(ideaRepo, commentRepo)
	s.statsService = service.NewStatsService(ideaRepo, commentRepo, identityRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

// seedIdentity persists an identity with the given role and returns it with
// a fresh session token for cookie-based requests.
func seedIdentity(t *testing.T, db *gorm.DB, role models.Role) *models.Identity {
	t.Helper()
	identity := &models.Identity{
		SessionToken: uuid.NewString(),
		Username:     "tester",
		Role:         role,
		LastActivity: time.Now(),
	}
	require.NoError(t, db.Create(identity).Error)
	return identity
}

// newRequest builds a request, optionally with a JSON body and session cookie.
func newRequest(method, target, body string, identity *models.Identity) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if identity != nil {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: identity.SessionToken})
	}
	return req
}

func seedTestIdea(t *testing.T, db *gorm.DB, status models.IdeaStatus) *models.Idea {
	t.Helper()
	idea := &models.Idea{
		Title:       "Faster search",
		Description: "Index the archive so lookups stop timing out.",
		Author:      "Anonymous",
		Status:      status,
	}
	require.NoError(t, db.Create(idea).Error)
	return idea
}
