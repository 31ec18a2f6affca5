package domain

// Benchmark is a batch of solutions submitted by a benchmarker.
type Benchmark struct {
	ID            string  `json:"id" validate:"required"`
	DatetimeAdded string  `json:"datetime_added"`
	MerkleRoot    *string `json:"merkle_root"`
	NumSolutions  int64   `json:"num_solutions" validate:"gte=0"`
}

type BenchmarkState struct {
	BenchmarkID    string  `json:"benchmark_id" validate:"required"`
	BlockConfirmed int64   `json:"block_confirmed"`
	SampledNonces  []int64 `json:"sampled_nonces"`
}

type BenchmarkData struct {
	BenchmarkID    string  `json:"benchmark_id" validate:"required"`
	SolutionNonces []int64 `json:"solution_nonces"`
}
