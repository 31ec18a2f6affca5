package domain

type Proof struct {
	BenchmarkID   string `json:"benchmark_id" validate:"required"`
	DatetimeAdded string `json:"datetime_added"`
}

type ProofState struct {
	BenchmarkID     string `json:"benchmark_id" validate:"required"`
	BlockConfirmed  int64  `json:"block_confirmed"`
	SubmissionDelay int64  `json:"submission_delay"`
}

type ProofData struct {
	BenchmarkID  string        `json:"benchmark_id" validate:"required"`
	MerkleProofs []MerkleProof `json:"merkle_proofs"`
}

type MerkleProof struct {
	Leaf   ProofLeaf `json:"leaf"`
	Branch any       `json:"branch"`
}

type ProofLeaf struct {
	Nonce            int64    `json:"nonce"`
	Solution         Solution `json:"solution"`
	FuelConsumed     int64    `json:"fuel_consumed"`
	RuntimeSignature int64    `json:"runtime_signature"`
}

// Solution holds the answer to one challenge instance. Exactly one of the
// fields is set, depending on the challenge type.
type Solution struct {
	Variables []bool    `json:"variables"`
	Routes    [][]int64 `json:"routes"`
	Items     []int64   `json:"items"`
	Indexes   []int64   `json:"indexes"`
}

// Kind names the challenge type a solution belongs to.
func (s Solution) Kind() string {
	switch {
	case s.Variables != nil:
		return "sat"
	case s.Routes != nil:
		return "vrp"
	case s.Items != nil:
		return "knapsack"
	case s.Indexes != nil:
		return "vector"
	default:
		return "unknown"
	}
}
