package schema

// Shapes of the explorer API resources.

var (
	Block = Object("block",
		Field("id", String()),
		Field("datetime_added", String()),
		Field("prev_block_id", String()),
		Field("height", Integer()),
		Field("round", Integer()),
		Field("config", Record(Unknown())),
		Optional("eth_block_num", Integer()),
	)

	BlockData = Object("block data",
		Field("block_id", String()),
		Optional("mempool_algorithm_ids", Array(String())),
		Optional("mempool_benchmark_ids", Array(String())),
		Optional("mempool_challenge_ids", Array(String())),
		Optional("mempool_fraud_ids", Array(String())),
		Optional("mempool_proof_ids", Array(String())),
		Optional("mempool_wasm_ids", Array(String())),
		Optional("active_algorithm_ids", Array(String())),
		Optional("active_benchmark_ids", Array(String())),
		Optional("active_challenge_ids", Array(String())),
		Optional("active_player_ids", Array(String())),
	)

	EthBlockNum = Object("eth block number",
		Field("eth_block_num", Integer()),
	)

	BlockRef = Object("block reference",
		Field("block_id", String()),
	)
)

var (
	Algorithm = Object("algorithm",
		Field("id", String()),
		Field("datetime_added", String()),
		Field("name", String()),
		Field("player_id", String()),
		Field("challenge_id", String()),
		Field("tx_hash", String()),
	)

	AlgorithmState = Object("algorithm state",
		Field("algorithm_id", String()),
		Field("block_confirmed", Integer()),
		Field("round_submitted", Integer()),
		Field("round_pushed", Nullable(Integer())),
		Field("round_merged", Nullable(Integer())),
		Field("banned", Nullable(Bool())),
	)

	AlgorithmData = Object("algorithm data",
		Field("algorithm_id", String()),
		Field("code", String()),
	)

	AlgorithmBlockData = Object("algorithm block data",
		Field("algorithm_id", String()),
		Field("block_id", String()),
		Field("num_qualifiers_by_player", Nullable(Record(Number()))),
		Field("adoption", Nullable(Number())),
		Field("merge_points", Nullable(Number())),
		Field("reward", Nullable(Number())),
	)

	RoundEarnings = Object("round earnings",
		Field("round_earnings", String()),
	)

	PlayerRoundEarnings = Object("player round earnings",
		Field("player_id", String()),
		Field("block_id", String()),
		Field("round_earnings", String()),
	)
)

var (
	Benchmark = Object("benchmark",
		Field("id", String()),
		Field("datetime_added", String()),
		Field("merkle_root", Nullable(String())),
		Field("num_solutions", Integer()),
	)

	BenchmarkState = Object("benchmark state",
		Field("benchmark_id", String()),
		Field("block_confirmed", Integer()),
		Field("sampled_nonces", Array(Integer())),
	)

	BenchmarkData = Object("benchmark data",
		Field("benchmark_id", String()),
		Field("solution_nonces", Array(Integer())),
	)
)

var point = Tuple(Number(), Number())

var (
	Challenge = Object("challenge",
		Field("id", String()),
		Field("datetime_added", String()),
		Field("name", String()),
	)

	ChallengeState = Object("challenge state",
		Field("challenge_id", String()),
		Field("block_confirmed", Integer()),
		Optional("round_active", Integer()),
	)

	ChallengeBlockData = Object("challenge block data",
		Field("challenge_id", String()),
		Field("block_id", String()),
		Field("solution_signature_threshold", Number()),
		Field("num_qualifiers", Integer()),
		Field("qualifier_difficulties", Array(point)),
		Field("base_frontier", Array(point)),
		Field("cutoff_frontier", Nullable(Array(point))),
		Field("scaled_frontier", Array(point)),
		Field("scaling_factor", Number()),
	)
)

var (
	Proof = Object("proof",
		Field("benchmark_id", String()),
		Field("datetime_added", String()),
	)

	ProofState = Object("proof state",
		Field("benchmark_id", String()),
		Field("block_confirmed", Integer()),
		Field("submission_delay", Integer()),
	)

	solution = Object("solution",
		Field("variables", Nullable(Array(Bool()))),
		Field("routes", Nullable(Array(Array(Integer())))),
		Field("items", Nullable(Array(Integer()))),
		Field("indexes", Nullable(Array(Integer()))),
	)

	proofLeaf = Object("proof leaf",
		Field("nonce", Integer()),
		Field("solution", solution),
		Field("fuel_consumed", Integer()),
		Field("runtime_signature", Integer()),
	)

	ProofData = Object("proof data",
		Field("benchmark_id", String()),
		Field("merkle_proofs", Array(Object("merkle proof",
			Field("leaf", proofLeaf),
			Field("branch", Null()),
		))),
	)
)

var (
	PlayerBlockData = Object("player block data",
		Field("player_id", String()),
		Field("block_id", String()),
		Field("num_qualifiers_by_challenge", Record(Number())),
		Field("cutoff", Number()),
		Field("imbalance", Number()),
		Field("imbalance_penalty", Number()),
		Field("influence", Number()),
		Field("reward", Number()),
		Field("rolling_balance", Nullable(Number())),
	)

	PlayerBalance = Object("player balance",
		Field("player_id", String()),
		Field("block_id", String()),
		Field("balance", String()),
	)

	PlayerEthBalance = Object("player eth balance",
		Field("player_id", String()),
		Field("eth_block_num", Integer()),
		Field("balance", String()),
	)

	TopBalance = Object("top balance",
		Field("player_id", String()),
		Field("balance", String()),
	)

	BalancePoint = Object("balance point",
		Field("eth_block_num", Integer()),
		Field("balance", String()),
		Field("player_id", String()),
		Field("datetime", String()),
	)

	LeaderboardEntry = Object("leaderboard entry",
		Field("id", String()),
		Field("datetime_added", String()),
		Field("balance", Number()),
		Field("round_earnings", Number()),
		Field("num_qualifiers_by_challenge", Record(Number())),
		Field("cutoff", Number()),
		Field("imbalance", Number()),
		Field("imbalance_penalty", Number()),
		Field("influence", Number()),
		Field("reward", Number()),
		Field("rolling_balance", Nullable(Number())),
	)

	ActivePlayers = Tuple(Array(String()), Integer())
)

var NetworkStats = Object("network stats",
	Field("total_blocks", Integer()),
	Field("total_players", Integer()),
	Field("total_algorithms", Integer()),
	Field("total_benchmarks", Integer()),
	Field("total_proofs", Integer()),
	Field("num_qualifiers_this_block", Integer()),
	Field("num_proofs_this_block", Integer()),
	Field("num_benchmarks_this_block", Integer()),
	Field("num_frauds_this_block", Integer()),
)

// ErrorBody is the JSON error payload returned with non-2xx responses.
var ErrorBody = Object("error body",
	Optional("message", String()),
	Optional("error", String()),
	Optional("code", String()),
	Optional("details", Unknown()),
)

// TupleEnvelope matches a [items, total] page.
func TupleEnvelope() Shape {
	return Tuple(Array(Unknown()), Integer())
}

// ObjectEnvelope matches a {<key>: items, total} page.
func ObjectEnvelope(key string) Shape {
	return Object("page",
		Field(key, Array(Unknown())),
		Field("total", Integer()),
	)
}
