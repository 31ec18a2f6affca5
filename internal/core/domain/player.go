package domain

import "strconv"

// PlayerBlockData is a player's standing at a block.
type PlayerBlockData struct {
	PlayerID                 string             `json:"player_id" validate:"required"`
	BlockID                  string             `json:"block_id"`
	NumQualifiersByChallenge map[string]float64 `json:"num_qualifiers_by_challenge"`
	Cutoff                   float64            `json:"cutoff"`
	Imbalance                float64            `json:"imbalance"`
	ImbalancePenalty         float64            `json:"imbalance_penalty"`
	Influence                float64            `json:"influence"`
	Reward                   float64            `json:"reward"`
	RollingBalance           *float64           `json:"rolling_balance"`
}

// Account is the display form of a player at the latest block.
type Account struct {
	PlayerBlockData
	ID            string `json:"id"`
	DatetimeAdded string `json:"datetime_added"`
	Balance       string `json:"balance"`
	RoundEarnings string `json:"round_earnings"`
}

// NewAccount derives an Account from player block data.
func NewAccount(d PlayerBlockData, addedAt string) Account {
	var rolling float64
	if d.RollingBalance != nil {
		rolling = *d.RollingBalance
	}
	return Account{
		PlayerBlockData: d,
		ID:              d.PlayerID,
		DatetimeAdded:   addedAt,
		Balance:         strconv.FormatFloat(rolling, 'f', -1, 64),
		RoundEarnings:   strconv.FormatFloat(d.Reward, 'f', -1, 64),
	}
}

type PlayerBalance struct {
	PlayerID string `json:"player_id" validate:"required"`
	BlockID  string `json:"block_id"`
	Balance  string `json:"balance"`
}

type PlayerEthBalance struct {
	PlayerID    string `json:"player_id" validate:"required"`
	EthBlockNum int64  `json:"eth_block_num"`
	Balance     string `json:"balance"`
}

type TopBalance struct {
	PlayerID string `json:"player_id" validate:"required"`
	Balance  string `json:"balance"`
}

// BalancePoint is one sample of a balance time series.
type BalancePoint struct {
	EthBlockNum int64  `json:"eth_block_num"`
	Balance     string `json:"balance"`
	PlayerID    string `json:"player_id"`
	Datetime    string `json:"datetime"`
}

type LeaderboardEntry struct {
	ID                       string             `json:"id" validate:"required"`
	DatetimeAdded            string             `json:"datetime_added"`
	Balance                  float64            `json:"balance"`
	RoundEarnings            float64            `json:"round_earnings"`
	NumQualifiersByChallenge map[string]float64 `json:"num_qualifiers_by_challenge"`
	Cutoff                   float64            `json:"cutoff"`
	Imbalance                float64            `json:"imbalance"`
	ImbalancePenalty         float64            `json:"imbalance_penalty"`
	Influence                float64            `json:"influence"`
	Reward                   float64            `json:"reward"`
	RollingBalance           *float64           `json:"rolling_balance"`
}

// ActivePlayers lists the ids of players active at a block.
type ActivePlayers struct {
	PlayerIDs []string
	Total     int
}
