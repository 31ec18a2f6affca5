package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/explorer"
)

func newTable(w io.Writer, header string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(tw, header)
	return tw
}

// renderEmpty prints the empty state of a list view.
func renderEmpty(w io.Writer, what string) {
	_, _ = fmt.Fprintf(w, "No %s found\n", what)
}

// renderError prints the error panel of a detail view.
func renderError(w io.Writer, what string, err error) {
	_, _ = fmt.Fprintf(w, "Error loading %s\n  %s\n", what, explorer.Describe(err))
}

func renderPageFooter(w io.Writer, page, count, total int) {
	pages := domain.TotalPages(total, count)
	if pages == 0 {
		pages = 1
	}
	_, _ = fmt.Fprintf(w, "page %d of %d (%s total)\n", page+1, pages, formatNumber(float64(total)))
}

func renderBlocks(w io.Writer, items []domain.Block) {
	tw := newTable(w, "HEIGHT\tID\tROUND\tADDED")
	for _, b := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", formatNumber(float64(b.Height)), formatAddress(b.ID, 6), b.Round, formatDate(b.DatetimeAdded))
	}
	_ = tw.Flush()
}

func renderBlock(w io.Writer, b *domain.Block, data *domain.BlockData) {
	tw := newTable(w, "FIELD\tVALUE")
	_, _ = fmt.Fprintf(tw, "id\t%s\n", b.ID)
	_, _ = fmt.Fprintf(tw, "height\t%d\n", b.Height)
	_, _ = fmt.Fprintf(tw, "round\t%d\n", b.Round)
	_, _ = fmt.Fprintf(tw, "previous\t%s\n", b.PrevBlockID)
	_, _ = fmt.Fprintf(tw, "added\t%s\n", formatDate(b.DatetimeAdded))
	if b.EthBlockNum != nil {
		_, _ = fmt.Fprintf(tw, "eth block\t%d\n", *b.EthBlockNum)
	}
	if data != nil {
		_, _ = fmt.Fprintf(tw, "active algorithms\t%d\n", len(data.ActiveAlgorithmIDs))
		_, _ = fmt.Fprintf(tw, "active benchmarks\t%d\n", len(data.ActiveBenchmarkIDs))
		_, _ = fmt.Fprintf(tw, "active challenges\t%d\n", len(data.ActiveChallengeIDs))
		_, _ = fmt.Fprintf(tw, "active players\t%d\n", len(data.ActivePlayerIDs))
		_, _ = fmt.Fprintf(tw, "mempool proofs\t%d\n", len(data.MempoolProofIDs))
	}
	_ = tw.Flush()
}

func renderAlgorithms(w io.Writer, items []domain.Algorithm) {
	tw := newTable(w, "ID\tNAME\tCHALLENGE\tPLAYER\tADDED")
	for _, a := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.ChallengeID, formatAddress(a.PlayerID, 4), formatDate(a.DatetimeAdded))
	}
	_ = tw.Flush()
}

func renderAlgorithm(w io.Writer, a *domain.Algorithm, state *domain.AlgorithmState) {
	tw := newTable(w, "FIELD\tVALUE")
	_, _ = fmt.Fprintf(tw, "id\t%s\n", a.ID)
	_, _ = fmt.Fprintf(tw, "name\t%s\n", a.Name)
	_, _ = fmt.Fprintf(tw, "challenge\t%s\n", a.ChallengeID)
	_, _ = fmt.Fprintf(tw, "player\t%s\n", a.PlayerID)
	_, _ = fmt.Fprintf(tw, "tx hash\t%s\n", a.TxHash)
	_, _ = fmt.Fprintf(tw, "added\t%s\n", formatDate(a.DatetimeAdded))
	if state != nil {
		_, _ = fmt.Fprintf(tw, "block confirmed\t%d\n", state.BlockConfirmed)
		_, _ = fmt.Fprintf(tw, "round submitted\t%d\n", state.RoundSubmitted)
		_, _ = fmt.Fprintf(tw, "round pushed\t%s\n", optInt(state.RoundPushed))
		_, _ = fmt.Fprintf(tw, "round merged\t%s\n", optInt(state.RoundMerged))
		_, _ = fmt.Fprintf(tw, "banned\t%t\n", state.Banned != nil && *state.Banned)
	}
	_ = tw.Flush()
}

func renderBenchmarks(w io.Writer, items []domain.Benchmark) {
	tw := newTable(w, "ID\tSOLUTIONS\tMERKLE ROOT\tADDED")
	for _, b := range items {
		root := "-"
		if b.MerkleRoot != nil {
			root = formatAddress(*b.MerkleRoot, 6)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, formatNumber(float64(b.NumSolutions)), root, formatDate(b.DatetimeAdded))
	}
	_ = tw.Flush()
}

func renderBenchmark(w io.Writer, b *domain.Benchmark, state *domain.BenchmarkState) {
	tw := newTable(w, "FIELD\tVALUE")
	_, _ = fmt.Fprintf(tw, "id\t%s\n", b.ID)
	_, _ = fmt.Fprintf(tw, "solutions\t%d\n", b.NumSolutions)
	if b.MerkleRoot != nil {
		_, _ = fmt.Fprintf(tw, "merkle root\t%s\n", *b.MerkleRoot)
	}
	_, _ = fmt.Fprintf(tw, "added\t%s\n", formatDate(b.DatetimeAdded))
	if state != nil {
		_, _ = fmt.Fprintf(tw, "block confirmed\t%d\n", state.BlockConfirmed)
		_, _ = fmt.Fprintf(tw, "sampled nonces\t%d\n", len(state.SampledNonces))
	}
	_ = tw.Flush()
}

func renderChallenges(w io.Writer, items []domain.Challenge) {
	tw := newTable(w, "ID\tNAME\tADDED")
	for _, c := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, formatDate(c.DatetimeAdded))
	}
	_ = tw.Flush()
}

func renderChallenge(w io.Writer, c *domain.Challenge, state *domain.ChallengeState) {
	tw := newTable(w, "FIELD\tVALUE")
	_, _ = fmt.Fprintf(tw, "id\t%s\n", c.ID)
	_, _ = fmt.Fprintf(tw, "name\t%s\n", c.Name)
	_, _ = fmt.Fprintf(tw, "added\t%s\n", formatDate(c.DatetimeAdded))
	if state != nil {
		_, _ = fmt.Fprintf(tw, "block confirmed\t%d\n", state.BlockConfirmed)
		_, _ = fmt.Fprintf(tw, "round active\t%s\n", optInt(state.RoundActive))
	}
	_ = tw.Flush()
}

func renderProofs(w io.Writer, items []domain.Proof) {
	tw := newTable(w, "BENCHMARK\tADDED")
	for _, p := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", p.BenchmarkID, formatDate(p.DatetimeAdded))
	}
	_ = tw.Flush()
}

func renderProof(w io.Writer, p *domain.Proof, state *domain.ProofState) {
	tw := newTable(w, "FIELD\tVALUE")
	_, _ = fmt.Fprintf(tw, "benchmark\t%s\n", p.BenchmarkID)
	_, _ = fmt.Fprintf(tw, "added\t%s\n", formatDate(p.DatetimeAdded))
	if state != nil {
		_, _ = fmt.Fprintf(tw, "block confirmed\t%d\n", state.BlockConfirmed)
		_, _ = fmt.Fprintf(tw, "submission delay\t%d\n", state.SubmissionDelay)
	}
	_ = tw.Flush()
}

func renderAccounts(w io.Writer, items []domain.Account) {
	tw := newTable(w, "PLAYER\tBALANCE\tROUND EARNINGS\tINFLUENCE\tCUTOFF")
	for _, a := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", formatAddress(a.ID, 4), formatNumberString(a.Balance),
			formatNumberString(a.RoundEarnings), formatNumber(a.Influence), formatNumber(a.Cutoff))
	}
	_ = tw.Flush()
}

func renderAccount(w io.Writer, a *domain.Account) {
	tw := newTable(w, "FIELD\tVALUE")
	_, _ = fmt.Fprintf(tw, "player\t%s\n", a.PlayerID)
	_, _ = fmt.Fprintf(tw, "block\t%s\n", a.BlockID)
	_, _ = fmt.Fprintf(tw, "balance\t%s\n", formatNumberString(a.Balance))
	_, _ = fmt.Fprintf(tw, "round earnings\t%s\n", formatNumberString(a.RoundEarnings))
	_, _ = fmt.Fprintf(tw, "influence\t%s\n", formatNumber(a.Influence))
	_, _ = fmt.Fprintf(tw, "imbalance\t%s\n", formatNumber(a.Imbalance))
	_, _ = fmt.Fprintf(tw, "cutoff\t%s\n", formatNumber(a.Cutoff))

	challenges := make([]string, 0, len(a.NumQualifiersByChallenge))
	for id := range a.NumQualifiersByChallenge {
		challenges = append(challenges, id)
	}
	sort.Strings(challenges)
	for _, id := range challenges {
		_, _ = fmt.Fprintf(tw, "qualifiers %s\t%s\n", id, formatNumber(a.NumQualifiersByChallenge[id]))
	}
	_ = tw.Flush()
}

func renderLeaderboard(w io.Writer, items []domain.LeaderboardEntry) {
	tw := newTable(w, "RANK\tPLAYER\tBALANCE\tROUND EARNINGS\tINFLUENCE")
	for i, e := range items {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, formatAddress(e.ID, 4), formatNumber(e.Balance),
			formatNumber(e.RoundEarnings), formatNumber(e.Influence))
	}
	_ = tw.Flush()
}

func renderStats(w io.Writer, s *domain.NetworkStats, avgBlockTime *float64) {
	tw := newTable(w, "METRIC\tVALUE")
	rows := []struct {
		name  string
		value int64
	}{
		{"blocks", s.TotalBlocks},
		{"players", s.TotalPlayers},
		{"algorithms", s.TotalAlgorithms},
		{"benchmarks", s.TotalBenchmarks},
		{"proofs", s.TotalProofs},
		{"qualifiers this block", s.NumQualifiersThisBlock},
		{"proofs this block", s.NumProofsThisBlock},
		{"benchmarks this block", s.NumBenchmarksThisBlock},
		{"frauds this block", s.NumFraudsThisBlock},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", r.name, formatNumber(float64(r.value)))
	}
	if avgBlockTime != nil {
		_, _ = fmt.Fprintf(tw, "average block time\t%ss\n", formatNumber(*avgBlockTime))
	}
	_ = tw.Flush()
}

func optInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}
