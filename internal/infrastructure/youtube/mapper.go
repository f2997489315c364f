package youtube

import (
	"html"
	"strings"

	"github.com/fridgechef/backend/internal/domain"
)

const (
	statusProcessed = "processed"
	privacyPublic   = "public"
)

// MapToCandidates converts search results to video candidates, marking each
// one eligible only when its status says it can be embedded for everyone.
// Results without a video ID are skipped. Search order is preserved.
func MapToCandidates(items []searchItem, statuses map[string]videoStatus) []domain.VideoCandidate {
	candidates := make([]domain.VideoCandidate, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		id := strings.TrimSpace(item.ID.VideoID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		status, ok := statuses[id]
		candidates = append(candidates, domain.VideoCandidate{
			ID:           id,
			Title:        html.UnescapeString(item.Snippet.Title),
			ChannelTitle: html.UnescapeString(item.Snippet.ChannelTitle),
			ThumbnailURL: pickThumbnail(item.Snippet.Thumbnails),
			IsEligible:   ok && isEligible(status),
		})
	}

	return candidates
}

// isEligible reports whether a video is public, embeddable and fully processed
func isEligible(status videoStatus) bool {
	return status.Embeddable &&
		status.PrivacyStatus == privacyPublic &&
		status.UploadStatus == statusProcessed
}

// pickThumbnail prefers the largest available thumbnail
func pickThumbnail(t thumbnails) string {
	for _, candidate := range []*thumbnail{t.High, t.Medium, t.Default} {
		if candidate != nil && candidate.URL != "" {
			return candidate.URL
		}
	}
	return ""
}
