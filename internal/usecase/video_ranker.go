package usecase

import (
	"sort"
	"strings"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/fridgechef/backend/internal/observability/metrics"
	"go.uber.org/zap"
)

// Scoring weights
const (
	fullRecipeNameBonus     = 6.0 // Title contains the whole recipe name
	recipeKeywordWeight     = 3.0 // Per recipe-name word found in the title
	ingredientKeywordWeight = 1.5 // Per ingredient word found in the title
	emphasisKeywordWeight   = 0.5 // Per cooking-emphasis word found in the title
	maxIngredientKeywords   = 6
)

// cookingEmphasisKeywords mark titles that are likely cooking videos
var cookingEmphasisKeywords = []string{
	"recipe",
	"레시피",
	"요리",
	"만드는법",
	"만들기",
	"cooking",
}

// scoredVideo pairs a candidate with its relevance score
type scoredVideo struct {
	video domain.VideoCandidate
	score float64
}

// rankContext holds the normalized recipe terms shared by every candidate
type rankContext struct {
	recipeName         string
	recipeKeywords     []string
	ingredientKeywords []string
}

// VideoRanker orders video candidates by keyword overlap with a recipe
type VideoRanker struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewVideoRanker creates a new video ranker
func NewVideoRanker(log *zap.Logger, m *metrics.Metrics) *VideoRanker {
	if log == nil {
		log = zap.NewNop()
	}
	return &VideoRanker{
		log:     log.Named("ranker"),
		metrics: m,
	}
}

// Rank returns up to maxResults eligible candidates ordered by relevance.
// Ineligible candidates are dropped before scoring. Ties keep input order, so
// when nothing scores above zero the result is simply the first eligible
// candidates. An empty slice means no eligible candidate was supplied.
func (r *VideoRanker) Rank(
	candidates []domain.VideoCandidate,
	recipeName string,
	ingredients []string,
	maxResults int,
) []domain.VideoCandidate {
	result := []domain.VideoCandidate{}
	if maxResults <= 0 {
		return result
	}

	rc := newRankContext(recipeName, ingredients)

	scored := make([]scoredVideo, 0, len(candidates))
	anyPositive := false
	for _, candidate := range candidates {
		if !candidate.IsEligible {
			continue
		}

		score := rc.score(candidate.Title)
		if score > 0 {
			anyPositive = true
		}

		r.log.Debug("scored candidate",
			zap.String("id", candidate.ID),
			zap.String("title", candidate.Title),
			zap.Float64("score", score),
		)

		scored = append(scored, scoredVideo{video: candidate, score: score})
	}

	if len(scored) == 0 {
		r.log.Debug("no eligible candidates", zap.String("recipe", recipeName))
		return result
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	for _, s := range scored {
		result = append(result, s.video)
	}

	fallback := !anyPositive
	if fallback {
		r.log.Debug("no candidate matched recipe keywords, keeping search order",
			zap.String("recipe", recipeName),
		)
	}
	r.metrics.ObserveRanking(fallback)

	return result
}

// newRankContext normalizes the recipe name and builds the keyword lists.
// Ingredient keywords are concatenated across ingredients, then capped.
func newRankContext(recipeName string, ingredients []string) rankContext {
	var ingredientKeywords []string
	for _, ingredient := range ingredients {
		ingredientKeywords = append(ingredientKeywords, ExtractKeywords(ingredient)...)
	}
	if len(ingredientKeywords) > maxIngredientKeywords {
		ingredientKeywords = ingredientKeywords[:maxIngredientKeywords]
	}

	return rankContext{
		recipeName:         NormalizeText(recipeName),
		recipeKeywords:     ExtractKeywords(recipeName),
		ingredientKeywords: ingredientKeywords,
	}
}

// score computes the relevance of one title against the recipe context
func (rc rankContext) score(title string) float64 {
	normalizedTitle := NormalizeText(title)
	if normalizedTitle == "" {
		return 0
	}

	score := 0.0

	if rc.recipeName != "" && strings.Contains(normalizedTitle, rc.recipeName) {
		score += fullRecipeNameBonus
	}

	for _, keyword := range rc.recipeKeywords {
		if strings.Contains(normalizedTitle, keyword) {
			score += recipeKeywordWeight
		}
	}

	for _, keyword := range rc.ingredientKeywords {
		if strings.Contains(normalizedTitle, keyword) {
			score += ingredientKeywordWeight
		}
	}

	for _, keyword := range cookingEmphasisKeywords {
		if strings.Contains(normalizedTitle, keyword) {
			score += emphasisKeywordWeight
		}
	}

	return score
}
