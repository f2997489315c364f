package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

// JournalService records cooked recipes together with a nutrition snapshot
type JournalService struct {
	repo      domain.JournalRepository
	estimator *NutritionEstimator
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewJournalService creates a new journal service
func NewJournalService(repo domain.JournalRepository, estimator *NutritionEstimator, log *zap.Logger) *JournalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalService{
		repo:      repo,
		estimator: estimator,
		log:       log.Named("journal"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Record stores a new journal entry. The nutrition estimate is computed from
// the sanitized ingredients at record time and kept with the entry.
func (s *JournalService) Record(ctx context.Context, request *domain.RecordRequest) (*domain.JournalEntry, error) {
	if request == nil || strings.TrimSpace(request.RecipeName) == "" {
		return nil, domain.ErrInvalidRequest
	}

	ingredients := SanitizeIngredients(request.Ingredients)
	now := s.now().UTC()

	cookedAt := now
	if request.CookedAt != nil && !request.CookedAt.IsZero() {
		cookedAt = request.CookedAt.UTC()
	}

	entry := &domain.JournalEntry{
		ID:          s.newID(),
		RecipeName:  strings.TrimSpace(request.RecipeName),
		Ingredients: ingredients,
		Notes:       strings.TrimSpace(request.Notes),
		CookedAt:    cookedAt,
		CreatedAt:   now,
		Nutrition:   s.estimator.Estimate(ingredients),
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		s.log.Error("failed to save journal entry", zap.String("recipe", entry.RecipeName), zap.Error(err))
		return nil, err
	}

	s.log.Info("journal entry recorded",
		zap.String("id", entry.ID),
		zap.String("recipe", entry.RecipeName),
		zap.Float64("calories", entry.Nutrition.Total.Calories),
	)

	return entry, nil
}

// Get returns a single journal entry
func (s *JournalService) Get(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.GetByID(ctx, id)
}

// List returns the most recently cooked entries first
func (s *JournalService) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	if limit > maxJournalLimit {
		limit = maxJournalLimit
	}
	return s.repo.List(ctx, limit)
}

// Delete removes a journal entry
func (s *JournalService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidRequest
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("journal entry deleted", zap.String("id", id))
	return nil
}
