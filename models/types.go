package models

// Connectivity states reported to clients
const (
	RemoteUnknown = "unknown"
	RemoteUp      = "up"
	RemoteDown    = "down"
)

// NothingYet is the message returned alongside an empty listing.
const NothingYet = "Nothing yet"

// Request types

// Scores is optional; when absent the form defaults (3 each) apply.
type SubmitVoteRequest struct {
	Performer string `json:"performer"`
	Scores    []int  `json:"scores"`
}

type SubmitDedicationRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

// Response types

type SubmitVoteResponse struct {
	Accepted        bool   `json:"accepted"`
	Performer       string `json:"performer"`
	Total           int    `json:"total"`
	WrittenRemotely bool   `json:"written_remotely"`
}

type SubmitDedicationResponse struct {
	Accepted        bool   `json:"accepted"`
	Author          string `json:"author"`
	WrittenRemotely bool   `json:"written_remotely"`
}

type RankingEntry struct {
	Rank          int     `json:"rank"` // 1-indexed
	PerformerName string  `json:"performer"`
	MeanScore     float64 `json:"mean_score"`
	VoteCount     int     `json:"vote_count"`
}

type RankingResponse struct {
	Podium  []RankingEntry `json:"podium"`
	Votes   []VoteRecord   `json:"votes"`
	Empty   bool           `json:"empty"`
	Message string         `json:"message,omitempty"`
	Remote  string         `json:"remote"`
}

type VoteListResponse struct {
	Votes   []VoteRecord `json:"votes"`
	Empty   bool         `json:"empty"`
	Message string       `json:"message,omitempty"`
	Remote  string       `json:"remote"`
}

type DedicationFeedResponse struct {
	Dedications []DedicationRecord `json:"dedications"`
	Empty       bool               `json:"empty"`
	Message     string             `json:"message,omitempty"`
	Remote      string             `json:"remote"`
}

type StatusResponse struct {
	Remote           string `json:"remote"`
	SessionID        string `json:"session_id"`
	SessionAge       string `json:"session_age"`
	LocalVotes       int    `json:"local_votes"`
	LocalDedications int    `json:"local_dedications"`
	ConflictStrategy string `json:"conflict_strategy"`
	ProbePolicy      string `json:"probe_policy"`
}

// Error response

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
