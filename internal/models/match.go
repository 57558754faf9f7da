// Package models defines the data structures for the compatibility engine.
package models

// Conflict is an item two users disagree on.
type Conflict struct {
	Interest   string        `json:"interest"`
	UserValue  InterestValue `json:"user_value"`
	OtherValue InterestValue `json:"other_value"`
}

// CategoryComparison is the per-category breakdown for a pair of users.
type CategoryComparison struct {
	Category     string     `json:"category"`
	MatchRatio   float64    `json:"match_c"`
	OverlapCount int        `json:"overlap_c"`
	BothLiked    []string   `json:"both_liked"`
	BothDisliked []string   `json:"both_disliked"`
	Conflicts    []Conflict `json:"conflicts"`

	// Reserved for per-user category statistics; always zero.
	UserAffinity  float64 `json:"user_affinity"`
	OtherAffinity float64 `json:"other_affinity"`
}

// CategoryScore is the lightweight per-category entry of a ranked match.
type CategoryScore struct {
	Category   string  `json:"category"`
	MatchRatio float64 `json:"match_c"`
}

// CompatibilityResult is the aggregate score for a pair of users.
type CompatibilityResult struct {
	BaseMatch    float64 `json:"base_match"`
	Confidence   float64 `json:"confidence"`
	FinalMatch   float64 `json:"final_match"`
	TotalOverlap int     `json:"total_overlap"`
}

// OverallScore is the overall block of MatchDetails.
type OverallScore struct {
	CompatibilityResult
	TotalInterestsUser  int `json:"total_interests_user"`
	TotalInterestsOther int `json:"total_interests_other"`
}

// MatchDetails is the full comparison between two users.
type MatchDetails struct {
	UserID       string               `json:"user_id"`
	OtherUserID  string               `json:"other_user_id"`
	UserProfile  ProfileSummary       `json:"user_profile"`
	OtherProfile ProfileSummary       `json:"other_profile"`
	Categories   []CategoryComparison `json:"categories"`
	Overall      OverallScore         `json:"overall"`
}

// MatchResult is one entry of a user's ranked match list.
type MatchResult struct {
	UserID            string          `json:"user_id"`
	DisplayName       string          `json:"display_name"`
	Age               *int            `json:"age"`
	Gender            *string         `json:"gender"`
	Bio               *string         `json:"bio"`
	LocationCity      *string         `json:"location_city"`
	LocationCountry   *string         `json:"location_country"`
	BaseMatch         float64         `json:"base_match"`
	Confidence        float64         `json:"confidence"`
	FinalMatch        float64         `json:"final_match"`
	OverlapCount      int             `json:"overlap_count"`
	MatchedCategories []CategoryScore `json:"matched_categories"`
}

// MatchList wraps ranked results for the wire.
type MatchList struct {
	Matches []MatchResult `json:"matches"`
}
