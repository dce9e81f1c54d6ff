package domain

import "time"

// RateLimitMarker is the substring that identifies rate-limit response headers.
const RateLimitMarker = "RateLimit"

// RateLimitSnapshot maps rate-limit header names to their values.
type RateLimitSnapshot map[string]string

// GraphQLRateLimit is the GraphQL API budget, which is tracked separately from REST.
type GraphQLRateLimit struct {
	Login     string    `json:"login"`
	Limit     int       `json:"limit"`
	Cost      int       `json:"cost"`
	Remaining int       `json:"remaining"`
	Used      int       `json:"used"`
	ResetAt   time.Time `json:"reset_at"`
}
