package domain

// VideoCandidate is a video returned by a search collaborator.
// IsEligible reflects the platform's availability check (public, embeddable, processed).
type VideoCandidate struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	ThumbnailURL string `json:"thumbnailUrl"`
	IsEligible   bool   `json:"isEligible"`
}

// RankRequest asks the ranker to order caller-supplied candidates
type RankRequest struct {
	Candidates  []VideoCandidate `json:"candidates"`
	RecipeName  string           `json:"recipeName"`
	Ingredients []string         `json:"ingredients"`
	MaxResults  int              `json:"maxResults"`
}

// VideoSearchResult is the response of a recipe video search
type VideoSearchResult struct {
	Query  string           `json:"query"`
	Videos []VideoCandidate `json:"videos"`
	Source string           `json:"source"` // "YouTube" or "Cache"
}
