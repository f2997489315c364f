package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrVideoSearchFailure is returned when the video platform request fails
	ErrVideoSearchFailure = errors.New("video search request failed")

	// ErrVideoSearchDisabled is returned when no video platform API key is configured
	ErrVideoSearchDisabled = errors.New("video search not configured")

	// ErrJournalEntryNotFound is returned when a journal entry does not exist
	ErrJournalEntryNotFound = errors.New("journal entry not found")

	// ErrJournalUnavailable is returned when the journal store cannot be reached
	ErrJournalUnavailable = errors.New("journal store unavailable")

	// ErrInvalidReferenceTable is returned when a food reference table fails validation
	ErrInvalidReferenceTable = errors.New("invalid food reference table")
)
