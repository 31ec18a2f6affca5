package domain

type Challenge struct {
	ID            string `json:"id" validate:"required"`
	DatetimeAdded string `json:"datetime_added"`
	Name          string `json:"name"`
}

type ChallengeState struct {
	ChallengeID    string `json:"challenge_id" validate:"required"`
	BlockConfirmed int64  `json:"block_confirmed"`
	RoundActive    *int64 `json:"round_active,omitempty"`
}

// Point is a [x, y] pair on a difficulty frontier.
type Point [2]float64

// ChallengeBlockData describes the difficulty frontiers of a challenge at a block.
type ChallengeBlockData struct {
	ChallengeID                string  `json:"challenge_id" validate:"required"`
	BlockID                    string  `json:"block_id"`
	SolutionSignatureThreshold float64 `json:"solution_signature_threshold"`
	NumQualifiers              int64   `json:"num_qualifiers"`
	QualifierDifficulties      []Point `json:"qualifier_difficulties"`
	BaseFrontier               []Point `json:"base_frontier"`
	CutoffFrontier             []Point `json:"cutoff_frontier"`
	ScaledFrontier             []Point `json:"scaled_frontier"`
	ScalingFactor              float64 `json:"scaling_factor"`
}
