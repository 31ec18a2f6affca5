package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/tigscan/internal/core/domain"
)

const validBlock = `{
	"id": "b1",
	"datetime_added": "2024-01-01T00:00:00Z",
	"prev_block_id": "b0",
	"height": 42,
	"round": 3,
	"config": {"rounds": {"blocks_per_round": 10080}}
}`

func TestParse_Block(t *testing.T) {
	b, err := Parse[domain.Block](Block, []byte(validBlock))
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, int64(42), b.Height)
	assert.Nil(t, b.EthBlockNum)
	assert.Contains(t, b.Config, "rounds")
}

func TestParse_MissingHeight(t *testing.T) {
	raw := `{"id":"b1","datetime_added":"x","prev_block_id":"b0","round":3,"config":{}}`

	b, err := Parse[domain.Block](Block, []byte(raw))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, domain.Block{}, b)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "block", ve.Resource)
	require.Len(t, ve.Issues, 1)
	assert.Equal(t, Issue{Path: "height", Expected: "integer", Actual: "missing"}, ve.Issues[0])
}

func TestParse_CollectsAllIssues(t *testing.T) {
	raw := `{"id":7,"datetime_added":"x","prev_block_id":null,"height":1.5,"round":3,"config":[]}`

	_, err := Parse[domain.Block](Block, []byte(raw))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))

	paths := make([]string, len(ve.Issues))
	for i, issue := range ve.Issues {
		paths[i] = issue.Path
	}
	assert.Equal(t, []string{"id", "prev_block_id", "height", "config"}, paths)
	assert.Equal(t, "non-integer number", ve.Issues[2].Actual)
	assert.Equal(t, "array", ve.Issues[3].Actual)
}

func TestParse_StructTags(t *testing.T) {
	raw := `{"id":"","datetime_added":"x","prev_block_id":"b0","height":-1,"round":0,"config":{}}`

	_, err := Parse[domain.Block](Block, []byte(raw))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Issues, 2)
	assert.Equal(t, "id", ve.Issues[0].Path)
	assert.Equal(t, "required", ve.Issues[0].Expected)
	assert.Equal(t, "height", ve.Issues[1].Path)
	assert.Equal(t, "gte=0", ve.Issues[1].Expected)
}

func TestParse_Nullable(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"null allowed", `{"id":"x","datetime_added":"d","merkle_root":null,"num_solutions":1}`, false},
		{"string allowed", `{"id":"x","datetime_added":"d","merkle_root":"ab","num_solutions":1}`, false},
		{"absent rejected", `{"id":"x","datetime_added":"d","num_solutions":1}`, true},
		{"wrong kind", `{"id":"x","datetime_added":"d","merkle_root":5,"num_solutions":1}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse[domain.Benchmark](Benchmark, []byte(tt.raw))
			if tt.wantErr {
				assert.True(t, IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse_NullableExpected(t *testing.T) {
	_, err := Parse[domain.Benchmark](Benchmark, []byte(`{"id":"x","datetime_added":"d","merkle_root":5,"num_solutions":1}`))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "string|null", ve.Issues[0].Expected)
	assert.Equal(t, "number", ve.Issues[0].Actual)
}

func TestParseList_ItemPath(t *testing.T) {
	raw := `[
		{"id":"a","datetime_added":"d","merkle_root":null,"num_solutions":1},
		{"id":"b","datetime_added":"d","merkle_root":null,"num_solutions":"many"}
	]`

	items, err := ParseList[domain.Benchmark](Benchmark, []byte(raw))
	assert.Nil(t, items)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "benchmark", ve.Resource)
	assert.Equal(t, "[1].num_solutions", ve.Issues[0].Path)
}

func TestParseList_Empty(t *testing.T) {
	items, err := ParseList[domain.Challenge](Challenge, []byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestParse_BlockDataPassthrough(t *testing.T) {
	raw := `{"block_id":"b1","active_player_ids":["p1"],"extra":true}`

	d, err := Parse[domain.BlockData](BlockData, []byte(raw))
	require.NoError(t, err)
	d.Normalize()
	assert.Equal(t, []string{"p1"}, d.ActivePlayerIDs)
	assert.Equal(t, []string{}, d.MempoolWasmIDs)
}

func TestStrictObject(t *testing.T) {
	shape := Object("thing", Field("a", String())).Strict()

	err := Validate(shape, []byte(`{"a":"x","b":1}`))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, Issue{Path: "b", Expected: "no field", Actual: "number"}, ve.Issues[0])
}

func TestParse_ChallengeFrontiers(t *testing.T) {
	raw := `{
		"challenge_id":"c1","block_id":"b1","solution_signature_threshold":0.5,
		"num_qualifiers":10,"qualifier_difficulties":[[1,2]],"base_frontier":[[1,2],[3,4]],
		"cutoff_frontier":null,"scaled_frontier":[[1.5,2]],"scaling_factor":1.2
	}`

	d, err := Parse[domain.ChallengeBlockData](ChallengeBlockData, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, domain.Point{3, 4}, d.BaseFrontier[1])
	assert.Nil(t, d.CutoffFrontier)

	bad := `{
		"challenge_id":"c1","block_id":"b1","solution_signature_threshold":0.5,
		"num_qualifiers":10,"qualifier_difficulties":[[1]],"base_frontier":[],
		"cutoff_frontier":null,"scaled_frontier":[],"scaling_factor":1.2
	}`
	_, err = Parse[domain.ChallengeBlockData](ChallengeBlockData, []byte(bad))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "qualifier_difficulties[0]", ve.Issues[0].Path)
	assert.Equal(t, "array of length 1", ve.Issues[0].Actual)
}

func TestParse_ProofSolution(t *testing.T) {
	raw := `{"benchmark_id":"bench1","merkle_proofs":[{"leaf":{"nonce":1,
		"solution":{"variables":null,"routes":[[0,1,0]],"items":null,"indexes":null},
		"fuel_consumed":100,"runtime_signature":7},"branch":null}]}`

	d, err := Parse[domain.ProofData](ProofData, []byte(raw))
	require.NoError(t, err)
	require.Len(t, d.MerkleProofs, 1)
	assert.Equal(t, "vrp", d.MerkleProofs[0].Leaf.Solution.Kind())
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `<html>`},
		{"trailing", `{} {}`},
		{"stray close bracket", `{}]`},
		{"stray close brace", `[1]}`},
		{"trailing scalar", `[] 5`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.raw))
			assert.True(t, IsValidationError(err), "got %v", err)
			assert.Nil(t, v)
		})
	}
}

func TestDecode_TrailingWhitespace(t *testing.T) {
	v, err := Decode([]byte("{\"a\":1}\n  \t"))
	require.NoError(t, err)
	assert.Contains(t, v, "a")
}

func TestEnvelopes(t *testing.T) {
	assert.NoError(t, Validate(TupleEnvelope(), []byte(`[[{"id":"a"}], 10]`)))
	assert.Error(t, Validate(TupleEnvelope(), []byte(`[[], 10, 3]`)))
	assert.NoError(t, Validate(ObjectEnvelope("blocks"), []byte(`{"blocks":[],"total":0}`)))
	assert.Error(t, Validate(ObjectEnvelope("blocks"), []byte(`{"data":[],"total":0}`)))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Resource: "block",
		Issues:   []Issue{{Path: "height", Expected: "integer", Actual: "missing"}},
	}
	assert.Equal(t, "invalid block data: height: expected integer, got missing", err.Error())
}
