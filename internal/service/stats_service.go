package service

import (
	"context"
	"time"

	"ideaboard/internal/cache"
	"ideaboard/internal/models"
	"ideaboard/internal/observability"
	"ideaboard/internal/repository"
)

// activeSessionWindow is the recency cutoff for the active-session count.
const activeSessionWindow = 24 * time.Hour

// BoardStats is the public stats snapshot for the board.
type BoardStats struct {
	TotalIdeas     int64                       `json:"total_ideas"`
	IdeasByStatus  map[models.IdeaStatus]int64 `json:"ideas_by_status"`
	TotalVotes     int64                       `json:"total_votes"`
	TotalComments  int64                       `json:"total_comments"`
	ActiveSessions int64                       `json:"active_sessions"`
}

// StatsService aggregates board counters.
type StatsService struct {
	ideaRepo     repository.IdeaRepository
	commentRepo  repository.CommentRepository
	identityRepo repository.IdentityRepository
}

// NewStatsService returns a new StatsService.
func NewStatsService(ideaRepo repository.IdeaRepository, commentRepo repository.CommentRepository, identityRepo repository.IdentityRepository) *StatsService {
	return &StatsService{
		ideaRepo:     ideaRepo,
		commentRepo:  commentRepo,
		identityRepo: identityRepo,
	}
}

// GetStats returns the board stats snapshot, cached briefly since every
// counter is a full scan.
func (s *StatsService) GetStats(ctx context.Context) (*BoardStats, error) {
	var stats BoardStats
	err := cache.Aside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		byStatus, err := s.ideaRepo.CountByStatus(ctx)
		if err != nil {
			return err
		}
		var total int64
		for status, count := range byStatus {
			total += count
			observability.IdeasByStatus.WithLabelValues(string(status)).Set(float64(count))
		}

		votes, err := s.ideaRepo.CountVotes(ctx)
		if err != nil {
			return err
		}
		comments, err := s.commentRepo.CountLive(ctx)
		if err != nil {
			return err
		}
		sessions, err := s.identityRepo.CountActiveSince(ctx, time.Now().Add(-activeSessionWindow))
		if err != nil {
			return err
		}
		observability.ActiveSessions.Set(float64(sessions))

		stats = BoardStats{
			TotalIdeas:     total,
			IdeasByStatus:  byStatus,
			TotalVotes:     votes,
			TotalComments:  comments,
			ActiveSessions: sessions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
