package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/fridgechef/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName        = "fridgechef-backend"
	maxIngredientLines = 100
	maxRankCandidates  = 200
	defaultRankResults = 5
)

// Version is reported by the health check; overridden at build time
var Version = "1.0.0"

// Handler holds dependencies for HTTP handlers.
// Any service may be nil; its endpoints then reply 501.
type Handler struct {
	estimator *usecase.NutritionEstimator
	ranker    *usecase.VideoRanker
	videos    *usecase.VideoService
	journal   *usecase.JournalService
	log       *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	estimator *usecase.NutritionEstimator,
	ranker *usecase.VideoRanker,
	videos *usecase.VideoService,
	journal *usecase.JournalService,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		estimator: estimator,
		ranker:    ranker,
		videos:    videos,
		journal:   journal,
		log:       log.Named("http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": Version,
	})
}

// EstimateNutrition handles POST /api/v1/nutrition/estimate
func (h *Handler) EstimateNutrition(c *gin.Context) {
	if h.estimator == nil {
		respondNotConfigured(c, "nutrition estimator")
		return
	}

	var req domain.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "request body must be a JSON object with an ingredients array")
		return
	}
	if len(req.Ingredients) > maxIngredientLines {
		respondInvalid(c, fmt.Sprintf("at most %d ingredients are allowed", maxIngredientLines))
		return
	}

	summary := h.estimator.Estimate(usecase.SanitizeIngredients(req.Ingredients))
	c.JSON(http.StatusOK, summary)
}

// RankVideos handles POST /api/v1/videos/rank
func (h *Handler) RankVideos(c *gin.Context) {
	if h.ranker == nil {
		respondNotConfigured(c, "video ranker")
		return
	}

	var req domain.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "request body must be a JSON object with a candidates array")
		return
	}
	if len(req.Candidates) > maxRankCandidates {
		respondInvalid(c, fmt.Sprintf("at most %d candidates are allowed", maxRankCandidates))
		return
	}
	if req.MaxResults < 0 {
		respondInvalid(c, "maxResults must not be negative")
		return
	}
	if req.MaxResults == 0 {
		req.MaxResults = defaultRankResults
	}

	videos := h.ranker.Rank(req.Candidates, req.RecipeName, usecase.SanitizeIngredients(req.Ingredients), req.MaxResults)
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// SearchVideos handles GET /api/v1/videos/search?recipe=&ingredient=&max=
func (h *Handler) SearchVideos(c *gin.Context) {
	if h.videos == nil {
		respondNotConfigured(c, "video search")
		return
	}

	maxResults, ok := optionalInt(c, "max")
	if !ok {
		return
	}

	result, err := h.videos.SearchRecipeVideos(
		c.Request.Context(),
		c.Query("recipe"),
		c.QueryArray("ingredient"),
		maxResults,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecordJournal handles POST /api/v1/journal
func (h *Handler) RecordJournal(c *gin.Context) {
	if h.journal == nil {
		respondNotConfigured(c, "journal")
		return
	}

	var req domain.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "request body must be a JSON object with a recipeName")
		return
	}
	if len(req.Ingredients) > maxIngredientLines {
		respondInvalid(c, fmt.Sprintf("at most %d ingredients are allowed", maxIngredientLines))
		return
	}

	entry, err := h.journal.Record(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListJournal handles GET /api/v1/journal?limit=
func (h *Handler) ListJournal(c *gin.Context) {
	if h.journal == nil {
		respondNotConfigured(c, "journal")
		return
	}

	limit, ok := optionalInt(c, "limit")
	if !ok {
		return
	}

	entries, err := h.journal.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// GetJournal handles GET /api/v1/journal/:id
func (h *Handler) GetJournal(c *gin.Context) {
	if h.journal == nil {
		respondNotConfigured(c, "journal")
		return
	}

	entry, err := h.journal.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteJournal handles DELETE /api/v1/journal/:id
func (h *Handler) DeleteJournal(c *gin.Context) {
	if h.journal == nil {
		respondNotConfigured(c, "journal")
		return
	}

	if err := h.journal.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// optionalInt parses an optional integer query parameter. It replies 400 and
// returns ok=false when the value is present but malformed.
func optionalInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondInvalid(c, fmt.Sprintf("%s must be a non-negative integer", name))
		return 0, false
	}
	return value, true
}
