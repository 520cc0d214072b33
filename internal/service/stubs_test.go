package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ideaboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ideaRepoStub is a stub for repository.IdeaRepository.
type ideaRepoStub struct {
	createFn        func(context.Context, *models.Idea) error
	getByIDFn       func(context.Context, uint) (*models.Idea, error)
	listVisibleFn   func(context.Context, []models.IdeaStatus, int, int) ([]*models.Idea, error)
	listByStatusFn  func(context.Context, models.IdeaStatus, int, int) ([]*models.Idea, error)
	updateStatusFn  func(context.Context, uint, models.IdeaStatus, uint, string) (*models.Idea, error)
	setFeaturedFn   func(context.Context, uint, bool, uint) (*models.Idea, error)
	softDeleteFn    func(context.Context, uint, uint) error
	addVoteFn       func(context.Context, uint, string, *uint) (*models.Idea, error)
	hasVotedFn      func(context.Context, uint, string) (bool, error)
	countByStatusFn func(context.Context) (map[models.IdeaStatus]int64, error)
	countVotesFn    func(context.Context) (int64, error)
}

func (s *ideaRepoStub) Create(ctx context.Context, idea *models.Idea) error {
	return s.createFn(ctx, idea)
}
func (s *ideaRepoStub) GetByID(ctx context.Context, id uint) (*models.Idea, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ideaRepoStub) ListVisible(ctx context.Context, statuses []models.IdeaStatus, limit, offset int) ([]*models.Idea, error) {
	return s.listVisibleFn(ctx, statuses, limit, offset)
}
func (s *ideaRepoStub) ListByStatus(ctx context.Context, status models.IdeaStatus, limit, offset int) ([]*models.Idea, error) {
	return s.listByStatusFn(ctx, status, limit, offset)
}
func (s *ideaRepoStub) UpdateStatus(ctx context.Context, id uint, status models.IdeaStatus, reviewerID uint, notes string) (*models.Idea, error) {
	return s.updateStatusFn(ctx, id, status, reviewerID, notes)
}
func (s *ideaRepoStub) SetFeatured(ctx context.Context, id uint, featured bool, reviewerID uint) (*models.Idea, error) {
	return s.setFeaturedFn(ctx, id, featured, reviewerID)
}
func (s *ideaRepoStub) SoftDelete(ctx context.Context, id uint, deletedBy uint) error {
	return s.softDeleteFn(ctx, id, deletedBy)
}
func (s *ideaRepoStub) AddVote(ctx context.Context, ideaID uint, voterIP string, identityID *uint) (*models.Idea, error) {
	return s.addVoteFn(ctx, ideaID, voterIP, identityID)
}
func (s *ideaRepoStub) HasVoted(ctx context.Context, ideaID uint, voterIP string) (bool, error) {
	return s.hasVotedFn(ctx, ideaID, voterIP)
}
func (s *ideaRepoStub) CountByStatus(ctx context.Context) (map[models.IdeaStatus]int64, error) {
	return s.countByStatusFn(ctx)
}
func (s *ideaRepoStub) CountVotes(ctx context.Context) (int64, error) {
	return s.countVotesFn(ctx)
}

func noopIdeaRepo() *ideaRepoStub {
	return &ideaRepoStub{
		createFn: func(_ context.Context, _ *models.Idea) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Idea, error) {
			return &models.Idea{ID: id, Status: models.IdeaStatusApproved}, nil
		},
		listVisibleFn: func(_ context.Context, _ []models.IdeaStatus, _, _ int) ([]*models.Idea, error) {
			return nil, nil
		},
		listByStatusFn: func(_ context.Context, _ models.IdeaStatus, _, _ int) ([]*models.Idea, error) {
			return nil, nil
		},
		updateStatusFn: func(_ context.Context, id uint, status models.IdeaStatus, _ uint, _ string) (*models.Idea, error) {
			return &models.Idea{ID: id, Status: status}, nil
		},
		setFeaturedFn: func(_ context.Context, id uint, featured bool, _ uint) (*models.Idea, error) {
			status := models.IdeaStatusApproved
			if featured {
				status = models.IdeaStatusFeatured
			}
			return &models.Idea{ID: id, IsFeatured: featured, Status: status}, nil
		},
		softDeleteFn: func(_ context.Context, _, _ uint) error { return nil },
		addVoteFn: func(_ context.Context, id uint, _ string, _ *uint) (*models.Idea, error) {
			return &models.Idea{ID: id, Votes: 1, Status: models.IdeaStatusApproved}, nil
		},
		hasVotedFn:      func(_ context.Context, _ uint, _ string) (bool, error) { return false, nil },
		countByStatusFn: func(_ context.Context) (map[models.IdeaStatus]int64, error) { return nil, nil },
		countVotesFn:    func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByIdeaFn func(context.Context, uint) ([]*models.Comment, error)
	listAllFn    func(context.Context, int, int) ([]*models.Comment, error)
	softDeleteFn func(context.Context, uint, uint) error
	countLiveFn  func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByIdea(ctx context.Context, ideaID uint) ([]*models.Comment, error) {
	return s.listByIdeaFn(ctx, ideaID)
}
func (s *commentRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, id uint, deletedBy uint) error {
	return s.softDeleteFn(ctx, id, deletedBy)
}
func (s *commentRepoStub) CountLive(ctx context.Context) (int64, error) {
	return s.countLiveFn(ctx)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByIdeaFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listAllFn:    func(_ context.Context, _, _ int) ([]*models.Comment, error) { return nil, nil },
		softDeleteFn: func(_ context.Context, _, _ uint) error { return nil },
		countLiveFn:  func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// identityRepoStub is a stub for repository.IdentityRepository.
type identityRepoStub struct {
	getByTokenFn       func(context.Context, string) (*models.Identity, error)
	getByIDFn          func(context.Context, uint) (*models.Identity, error)
	createFn           func(context.Context, *models.Identity) error
	touchActivityFn    func(context.Context, uint, string, string) error
	setRoleFn          func(context.Context, uint, models.Role) error
	setUsernameFn      func(context.Context, uint, string) error
	countActiveSinceFn func(context.Context, time.Time) (int64, error)
}

func (s *identityRepoStub) GetByToken(ctx context.Context, token string) (*models.Identity, error) {
	return s.getByTokenFn(ctx, token)
}
func (s *identityRepoStub) GetByID(ctx context.Context, id uint) (*models.Identity, error) {
	return s.getByIDFn(ctx, id)
}
func (s *identityRepoStub) Create(ctx context.Context, identity *models.Identity) error {
	return s.createFn(ctx, identity)
}
func (s *identityRepoStub) TouchActivity(ctx context.Context, id uint, ip, userAgent string) error {
	return s.touchActivityFn(ctx, id, ip, userAgent)
}
func (s *identityRepoStub) SetRole(ctx context.Context, id uint, role models.Role) error {
	return s.setRoleFn(ctx, id, role)
}
func (s *identityRepoStub) SetUsername(ctx context.Context, id uint, username string) error {
	return s.setUsernameFn(ctx, id, username)
}
func (s *identityRepoStub) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countActiveSinceFn(ctx, since)
}

func noopIdentityRepo() *identityRepoStub {
	return &identityRepoStub{
		getByTokenFn: func(_ context.Context, _ string) (*models.Identity, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Identity, error) {
			return &models.Identity{ID: id, Role: models.RoleGuest}, nil
		},
		createFn: func(_ context.Context, identity *models.Identity) error {
			identity.ID = 1
			return nil
		},
		touchActivityFn:    func(_ context.Context, _ uint, _, _ string) error { return nil },
		setRoleFn:          func(_ context.Context, _ uint, _ models.Role) error { return nil },
		setUsernameFn:      func(_ context.Context, _ uint, _ string) error { return nil },
		countActiveSinceFn: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
	}
}

// invitationRepoStub is a stub for repository.InvitationRepository.
type invitationRepoStub struct {
	createFn       func(context.Context, *models.InvitationCode) error
	getByCodeFn    func(context.Context, string) (*models.InvitationCode, error)
	redeemFn       func(context.Context, string, string, time.Time) (*models.InvitationCode, error)
	ensureSeededFn func(context.Context, *models.InvitationCode) error
	listFn         func(context.Context, int, int) ([]models.InvitationCode, error)
	deactivateFn   func(context.Context, uint) error
}

func (s *invitationRepoStub) Create(ctx context.Context, code *models.InvitationCode) error {
	return s.createFn(ctx, code)
}
func (s *invitationRepoStub) GetByCode(ctx context.Context, code string) (*models.InvitationCode, error) {
	return s.getByCodeFn(ctx, code)
}
func (s *invitationRepoStub) Redeem(ctx context.Context, code, usedBy string, now time.Time) (*models.InvitationCode, error) {
	return s.redeemFn(ctx, code, usedBy, now)
}
func (s *invitationRepoStub) EnsureSeeded(ctx context.Context, code *models.InvitationCode) error {
	return s.ensureSeededFn(ctx, code)
}
func (s *invitationRepoStub) List(ctx context.Context, limit, offset int) ([]models.InvitationCode, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *invitationRepoStub) Deactivate(ctx context.Context, id uint) error {
	return s.deactivateFn(ctx, id)
}

func noopInvitationRepo() *invitationRepoStub {
	return &invitationRepoStub{
		createFn: func(_ context.Context, _ *models.InvitationCode) error { return nil },
		getByCodeFn: func(_ context.Context, code string) (*models.InvitationCode, error) {
			return &models.InvitationCode{Code: code, Role: models.RoleModerator}, nil
		},
		redeemFn: func(_ context.Context, code, _ string, _ time.Time) (*models.InvitationCode, error) {
			return &models.InvitationCode{Code: code, Role: models.RoleModerator, UseCount: 1, MaxUses: 1}, nil
		},
		ensureSeededFn: func(_ context.Context, _ *models.InvitationCode) error { return nil },
		listFn:         func(_ context.Context, _, _ int) ([]models.InvitationCode, error) { return nil, nil },
		deactivateFn:   func(_ context.Context, _ uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.ErrCodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.ErrCodeForbidden)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.ErrCodeConflict)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.ErrCodeNotFound)
}
