package domain

// Algorithm is an algorithm submitted by a player for a challenge.
type Algorithm struct {
	ID            string `json:"id" validate:"required"`
	DatetimeAdded string `json:"datetime_added"`
	Name          string `json:"name"`
	PlayerID      string `json:"player_id"`
	ChallengeID   string `json:"challenge_id"`
	TxHash        string `json:"tx_hash"`
}

type AlgorithmState struct {
	AlgorithmID    string `json:"algorithm_id" validate:"required"`
	BlockConfirmed int64  `json:"block_confirmed"`
	RoundSubmitted int64  `json:"round_submitted"`
	RoundPushed    *int64 `json:"round_pushed"`
	RoundMerged    *int64 `json:"round_merged"`
	Banned         *bool  `json:"banned"`
}

// AlgorithmData holds the submitted source code.
type AlgorithmData struct {
	AlgorithmID string `json:"algorithm_id" validate:"required"`
	Code        string `json:"code"`
}

type AlgorithmBlockData struct {
	AlgorithmID           string             `json:"algorithm_id" validate:"required"`
	BlockID               string             `json:"block_id"`
	NumQualifiersByPlayer map[string]float64 `json:"num_qualifiers_by_player"`
	Adoption              *float64           `json:"adoption"`
	MergePoints           *float64           `json:"merge_points"`
	Reward                *float64           `json:"reward"`
}

// RoundEarnings is the reward string reported for an entity at a block.
type RoundEarnings struct {
	PlayerID      string `json:"player_id,omitempty"`
	BlockID       string `json:"block_id,omitempty"`
	RoundEarnings string `json:"round_earnings"`
}
