package model

// LeaderboardEntry is one ranked row. Rank is 1-based and dense.
type LeaderboardEntry struct {
	Rank           int          `json:"rank"`
	User           PlayerRecord `json:"user"`
	Points         int          `json:"points"`
	CompletedTasks int          `json:"completedTasks"`
}

// LeaderboardPage is a window of the global leaderboard
type LeaderboardPage struct {
	Entries []LeaderboardEntry `json:"entries"`
	HasMore bool               `json:"hasMore"`
	Total   int                `json:"total"`
}
