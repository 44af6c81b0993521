package dto

import "time"

// ContentTallyResponse carries per-content-type counters for the dashboard.
type ContentTallyResponse struct {
	Total       int64 `json:"total"`
	Published   int64 `json:"published"`
	Drafts      int64 `json:"drafts"`
	NewLastWeek int64 `json:"new_last_week"`
}

// ContactTallyResponse summarizes the contact inbox.
type ContactTallyResponse struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
}

// AdminStatsResponse aggregates the staff dashboard summary.
type AdminStatsResponse struct {
	Users          int64                           `json:"users"`
	Content        map[string]ContentTallyResponse `json:"content"`
	Messages       ContactTallyResponse            `json:"messages"`
	UpcomingEvents []EventResponse                 `json:"upcoming_events"`
	GeneratedAt    time.Time                       `json:"generated_at"`
	CacheHit       bool                            `json:"cache_hit"`
}
