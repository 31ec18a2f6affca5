package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/core/pager"
	"github.com/vietddude/tigscan/internal/explorer"
)

var scrollAll bool

var scrollCmd = &cobra.Command{
	Use:       "scroll <resource>",
	Short:     "Browse a list page by page; Enter loads the next page",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"blocks", "algorithms", "benchmarks", "challenges", "proofs", "accounts"},
	RunE:      runScroll,
}

func init() {
	scrollCmd.Flags().BoolVar(&scrollAll, "all", false, "load every page without waiting for input")
	rootCmd.AddCommand(scrollCmd)
}

func runScroll(cmd *cobra.Command, args []string) error {
	s := scroller{
		out:   cmd.OutOrStdout(),
		in:    cmd.InOrStdin(),
		count: app.pageSize(),
		all:   scrollAll,
	}
	ctx := cmd.Context()
	svc := app.svc

	switch args[0] {
	case "blocks":
		return scroll(ctx, s, "blocks", svc.ListBlocks, renderBlocks)
	case "algorithms":
		return scroll(ctx, s, "algorithms", svc.ListAlgorithms, renderAlgorithms)
	case "benchmarks":
		return scroll(ctx, s, "benchmarks", svc.ListBenchmarks, renderBenchmarks)
	case "challenges":
		return scroll(ctx, s, "challenges", svc.ListChallenges, renderChallenges)
	case "proofs":
		return scroll(ctx, s, "proofs", svc.ListProofs, renderProofs)
	case "accounts":
		return scroll(ctx, s, "accounts", svc.ListAccounts, renderAccounts)
	}
	return fmt.Errorf("unknown resource %q", args[0])
}

type scroller struct {
	out   io.Writer
	in    io.Reader
	count int
	all   bool
}

// scroll shows a list through a pager. Every input line is a request for
// the next page, the way reaching the end of a list is in a browser.
func scroll[T any](
	ctx context.Context,
	s scroller,
	what string,
	list func(context.Context, domain.ListQuery) (domain.Page[T], error),
	render func(io.Writer, []T),
) error {
	fn := explorer.QueryFunc(list, s.count, nil)

	if s.all {
		p := pager.New(pager.QueryKey(what), fn, s.count)
		err := p.Drain(ctx)
		st := p.State()
		if len(st.Items) > 0 {
			render(s.out, st.Items)
		}
		if err != nil {
			renderError(s.out, what, err)
			return shown(err)
		}
		if len(st.Items) == 0 {
			renderEmpty(s.out, what)
			return nil
		}
		_, _ = fmt.Fprintf(s.out, "-- %d of %d %s --\n", len(st.Items), st.Total, what)
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu      sync.Mutex
		printed int
		p       *pager.Pager[T]
	)
	p = pager.New(pager.QueryKey(what), fn, s.count, pager.WithStateChange(func(t pager.Transition) {
		if t.To != pager.PhaseHasPages {
			return
		}
		st := p.State()

		mu.Lock()
		defer mu.Unlock()
		if len(st.Items) > printed {
			render(s.out, st.Items[printed:])
			printed = len(st.Items)
		}
		if st.HasNextPage {
			_, _ = fmt.Fprintf(s.out, "-- %d of %d %s, press Enter for more --\n", printed, st.Total, what)
			return
		}
		if printed == 0 {
			renderEmpty(s.out, what)
		} else {
			_, _ = fmt.Fprintf(s.out, "-- end of %s (%d) --\n", what, printed)
		}
		cancel()
	}))

	onError := func(err error) {
		st := p.State()

		mu.Lock()
		defer mu.Unlock()
		renderError(s.out, what, err)
		_, _ = fmt.Fprintf(s.out, "-- %s, press Enter to retry --\n", pager.Describe(st.Phase))
	}

	visible := make(chan bool)
	go func() {
		defer close(visible)
		select {
		case visible <- true:
		case <-ctx.Done():
			return
		}
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case visible <- true:
			case <-ctx.Done():
				return
			}
		}
	}()

	err := pager.NewSentinel(p, onError).Run(ctx, visible)
	// Reaching the end of the list cancels ctx.
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	// Input ran out while the last load had failed.
	if st := p.State(); st.IsError {
		return shown(st.Err)
	}
	return nil
}
