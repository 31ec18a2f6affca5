package domain

// NetworkStats summarizes the network for the dashboard.
type NetworkStats struct {
	TotalBlocks            int64 `json:"total_blocks"`
	TotalPlayers           int64 `json:"total_players"`
	TotalAlgorithms        int64 `json:"total_algorithms"`
	TotalBenchmarks        int64 `json:"total_benchmarks"`
	TotalProofs            int64 `json:"total_proofs"`
	NumQualifiersThisBlock int64 `json:"num_qualifiers_this_block"`
	NumProofsThisBlock     int64 `json:"num_proofs_this_block"`
	NumBenchmarksThisBlock int64 `json:"num_benchmarks_this_block"`
	NumFraudsThisBlock     int64 `json:"num_frauds_this_block"`
}
