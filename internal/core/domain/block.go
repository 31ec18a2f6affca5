package domain

// Block represents a block of the explored chain.
type Block struct {
	ID            string         `json:"id" validate:"required"`
	DatetimeAdded string         `json:"datetime_added"`
	PrevBlockID   string         `json:"prev_block_id"`
	Height        int64          `json:"height" validate:"gte=0"`
	Round         int64          `json:"round" validate:"gte=0"`
	Config        map[string]any `json:"config"`
	EthBlockNum   *int64         `json:"eth_block_num,omitempty"`
}

// BlockData lists the ids that were in the mempool and active at a block.
type BlockData struct {
	BlockID             string   `json:"block_id" validate:"required"`
	MempoolAlgorithmIDs []string `json:"mempool_algorithm_ids"`
	MempoolBenchmarkIDs []string `json:"mempool_benchmark_ids"`
	MempoolChallengeIDs []string `json:"mempool_challenge_ids"`
	MempoolFraudIDs     []string `json:"mempool_fraud_ids"`
	MempoolProofIDs     []string `json:"mempool_proof_ids"`
	MempoolWasmIDs      []string `json:"mempool_wasm_ids"`
	ActiveAlgorithmIDs  []string `json:"active_algorithm_ids"`
	ActiveBenchmarkIDs  []string `json:"active_benchmark_ids"`
	ActiveChallengeIDs  []string `json:"active_challenge_ids"`
	ActivePlayerIDs     []string `json:"active_player_ids"`
}

// Normalize replaces missing id lists with empty ones.
func (d *BlockData) Normalize() {
	for _, ids := range []*[]string{
		&d.MempoolAlgorithmIDs, &d.MempoolBenchmarkIDs, &d.MempoolChallengeIDs,
		&d.MempoolFraudIDs, &d.MempoolProofIDs, &d.MempoolWasmIDs,
		&d.ActiveAlgorithmIDs, &d.ActiveBenchmarkIDs, &d.ActiveChallengeIDs,
		&d.ActivePlayerIDs,
	} {
		if *ids == nil {
			*ids = []string{}
		}
	}
}

// BlockConfig is the protocol configuration carried in Block.Config.
type BlockConfig struct {
	ERC20 struct {
		RPCURL       string `json:"rpc_url"`
		ChainID      string `json:"chain_id"`
		BurnAddress  string `json:"burn_address"`
		TokenAddress string `json:"token_address"`
	} `json:"erc20"`
	Rounds struct {
		BlocksPerRound int64 `json:"blocks_per_round"`
	} `json:"rounds"`
	Rewards struct {
		Schedule []struct {
			RoundStart  int64   `json:"round_start"`
			BlockReward float64 `json:"block_reward"`
		} `json:"schedule"`
		Distribution struct {
			Benchmarkers  float64 `json:"benchmarkers"`
			Breakthroughs float64 `json:"breakthroughs"`
			Optimisations float64 `json:"optimisations"`
		} `json:"distribution"`
	} `json:"rewards"`
	WasmVM struct {
		MaxFuel   int64 `json:"max_fuel"`
		MaxMemory int64 `json:"max_memory"`
	} `json:"wasm_vm"`
	Difficulty struct {
		Parameters       map[string][]DifficultyParameter `json:"parameters"`
		MaxScalingFactor float64                          `json:"max_scaling_factor"`
	} `json:"difficulty"`
	Qualifiers struct {
		MinCutoff                float64 `json:"min_cutoff"`
		CutoffMultiplier         float64 `json:"cutoff_multiplier"`
		CutoffPhaseInPeriod      int64   `json:"cutoff_phase_in_period"`
		TotalQualifiersThreshold int64   `json:"total_qualifiers_threshold"`
	} `json:"qualifiers"`
	AlgorithmSubmissions struct {
		PushDelay            int64   `json:"push_delay"`
		SubmissionFee        string  `json:"submission_fee"`
		AdoptionThreshold    float64 `json:"adoption_threshold"`
		MergePointsThreshold int64   `json:"merge_points_threshold"`
	} `json:"algorithm_submissions"`
	BenchmarkSubmissions struct {
		MaxSamples                int64   `json:"max_samples"`
		LifespanPeriod            int64   `json:"lifespan_period"`
		MinNumSolutions           int64   `json:"min_num_solutions"`
		SubmissionDelayMultiplier float64 `json:"submission_delay_multiplier"`
	} `json:"benchmark_submissions"`
}

// DifficultyParameter bounds one difficulty dimension of a challenge.
type DifficultyParameter struct {
	Name     string  `json:"name"`
	MaxValue float64 `json:"max_value"`
	MinValue float64 `json:"min_value"`
}
