package service

import (
	"context"
	"log/slog"
	"strings"

	"ideaboard/internal/cache"
	"ideaboard/internal/middleware"
	"ideaboard/internal/models"
	"ideaboard/internal/repository"
)

const (
	minTitleLen       = 3
	maxTitleLen       = 300
	minDescriptionLen = 10
	maxDescriptionLen = 10000
	defaultPageSize   = 50
	maxPageSize       = 200
)

// IdeaService implements the idea lifecycle: submission, listing, voting,
// review, and featuring.
type IdeaService struct {
	ideaRepo repository.IdeaRepository
}

// SubmitIdeaInput carries a new idea submission.
type SubmitIdeaInput struct {
	Identity    *models.Identity
	Title       string
	Description string
	Author      string
}

// ListIdeasInput carries listing parameters.
type ListIdeasInput struct {
	Role   models.Role
	Limit  int
	Offset int
}

// VoteInput carries a vote on an idea.
type VoteInput struct {
	Identity *models.Identity
	IdeaID   uint
	VoterIP  string
}

// SetStatusInput carries a review decision.
type SetStatusInput struct {
	Identity *models.Identity
	IdeaID   uint
	Status   models.IdeaStatus
	Notes    string
}

// SetFeaturedInput carries a featured toggle.
type SetFeaturedInput struct {
	Identity *models.Identity
	IdeaID   uint
	Featured bool
}

// NewIdeaService returns a new IdeaService.
func NewIdeaService(ideaRepo repository.IdeaRepository) *IdeaService {
	return &IdeaService{ideaRepo: ideaRepo}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Submit validates and stores a new idea. Every role including guest may
// submit; new ideas always start pending.
func (s *IdeaService) Submit(ctx context.Context, in SubmitIdeaInput) (*models.Idea, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if len(title) < minTitleLen {
		return nil, models.NewValidationError("Title must be at least 3 characters")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(description) < minDescriptionLen {
		return nil, models.NewValidationError("Description must be at least 10 characters")
	}
	if len(description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 10000 characters)")
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = "Anonymous"
	}

	idea := &models.Idea{
		Title:       title,
		Description: description,
		Author:      author,
		Status:      models.IdeaStatusPending,
	}
	if in.Identity != nil && in.Identity.ID != 0 {
		id := in.Identity.ID
		idea.AuthorIdentityID = &id
		if author == "Anonymous" && in.Identity.Username != "" {
			idea.Author = in.Identity.Username
		}
	}

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, err
	}
	return s.ideaRepo.GetByID(ctx, idea.ID)
}

// visibilityClass names the cache bucket a status filter maps to. Roles
// sharing the same filter share a cached listing.
func visibilityClass(statuses []models.IdeaStatus) string {
	if len(statuses) == 0 {
		return "all"
	}
	return "public"
}

// List returns the board for a role: featured first, then by votes, then by
// recency. Guests and users see only public statuses. The canonical first
// page is served cache-aside; deeper pages always hit storage.
func (s *IdeaService) List(ctx context.Context, in ListIdeasInput) ([]*models.Idea, error) {
	limit, offset := clampPage(in.Limit, in.Offset)
	statuses := models.VisibleStatusesFor(in.Role)

	if offset != 0 || limit != defaultPageSize {
		return s.ideaRepo.ListVisible(ctx, statuses, limit, offset)
	}

	var ideas []*models.Idea
	err := cache.Aside(ctx, cache.IdeaListKey(visibilityClass(statuses)), &ideas, cache.IdeaListTTL, func() error {
		var loadErr error
		ideas, loadErr = s.ideaRepo.ListVisible(ctx, statuses, limit, offset)
		return loadErr
	})
	return ideas, err
}

// Get returns one idea, applying the same role visibility as the listing.
// An existing idea outside the caller's visibility reads as not found so
// hidden ideas stay unobservable. The cached entry holds the raw row; the
// visibility check runs on every read so roles can share it.
func (s *IdeaService) Get(ctx context.Context, id uint, role models.Role) (*models.Idea, error) {
	var idea *models.Idea
	err := cache.Aside(ctx, cache.IdeaKey(id), &idea, cache.IdeaTTL, func() error {
		var loadErr error
		idea, loadErr = s.ideaRepo.GetByID(ctx, id)
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	if !idea.VisibleTo(role) {
		return nil, models.NewNotFoundError("Idea", id)
	}
	return idea, nil
}

// ListPending returns ideas awaiting review for the content dashboard.
func (s *IdeaService) ListPending(ctx context.Context, identity *models.Identity, limit, offset int) ([]*models.Idea, error) {
	if identity == nil || !identity.Role.CanManageContent() {
		return nil, models.NewForbiddenError("Content manager role required")
	}
	limit, offset = clampPage(limit, offset)
	return s.ideaRepo.ListByStatus(ctx, models.IdeaStatusPending, limit, offset)
}

// Vote records a vote. Uniqueness is per (idea, address) and is enforced by
// the storage layer, so a duplicate surfaces as a conflict regardless of
// how the requests race.
func (s *IdeaService) Vote(ctx context.Context, in VoteInput) (*models.Idea, error) {
	if in.VoterIP == "" {
		return nil, models.NewValidationError("Voter address is required")
	}

	idea, err := s.ideaRepo.GetByID(ctx, in.IdeaID)
	if err != nil {
		return nil, err
	}
	role := models.RoleGuest
	if in.Identity != nil {
		role = in.Identity.Role
	}
	if !idea.VisibleTo(role) {
		return nil, models.NewNotFoundError("Idea", in.IdeaID)
	}

	// Cheap duplicate check before attempting the insert. The unique index
	// in AddVote remains the backstop for racing requests, so a stale
	// answer here only costs a failed insert.
	if voted, err := s.ideaRepo.HasVoted(ctx, in.IdeaID, in.VoterIP); err == nil && voted {
		middleware.DuplicateVotes.Inc()
		return nil, models.NewConflictError("You have already voted for this idea")
	}

	var identityID *uint
	if in.Identity != nil && in.Identity.ID != 0 {
		id := in.Identity.ID
		identityID = &id
	}

	updated, err := s.ideaRepo.AddVote(ctx, in.IdeaID, in.VoterIP, identityID)
	if err != nil {
		if models.IsCode(err, models.ErrCodeConflict) {
			middleware.DuplicateVotes.Inc()
		}
		return nil, err
	}
	middleware.VotesRecorded.Inc()
	return updated, nil
}

// SetStatus applies a review decision. Only statuses in the reviewable set
// may be assigned; featured is reachable only through SetFeatured.
func (s *IdeaService) SetStatus(ctx context.Context, in SetStatusInput) (*models.Idea, error) {
	if in.Identity == nil || !in.Identity.Role.CanManageContent() {
		return nil, models.NewForbiddenError("Content manager role required")
	}
	if !in.Status.Reviewable() {
		return nil, models.NewValidationError("Invalid status")
	}

	idea, err := s.ideaRepo.UpdateStatus(ctx, in.IdeaID, in.Status, in.Identity.ID, in.Notes)
	if err != nil {
		return nil, err
	}

	middleware.StatusChanges.WithLabelValues(string(in.Status)).Inc()
	middleware.Logger.InfoContext(ctx, "Idea status changed",
		slog.Uint64("idea_id", uint64(in.IdeaID)),
		slog.String("status", string(in.Status)),
		slog.Uint64("reviewer_id", uint64(in.Identity.ID)))
	return idea, nil
}

// SetFeatured toggles the featured flag. Featuring an idea also moves it to
// the featured status; unfeaturing returns it to approved.
func (s *IdeaService) SetFeatured(ctx context.Context, in SetFeaturedInput) (*models.Idea, error) {
	if in.Identity == nil || !in.Identity.Role.CanManageContent() {
		return nil, models.NewForbiddenError("Content manager role required")
	}
	idea, err := s.ideaRepo.SetFeatured(ctx, in.IdeaID, in.Featured, in.Identity.ID)
	if err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "Idea featured flag changed",
		slog.Uint64("idea_id", uint64(in.IdeaID)),
		slog.Bool("featured", in.Featured))
	return idea, nil
}
