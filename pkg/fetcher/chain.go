package fetcher

import (
	"context"

	"github.com/urlmark/urlmark/internal/logger"
	"github.com/urlmark/urlmark/pkg/normalizer"
)

// reasonNotApplicable is recorded for strategies skipped because they cannot
// handle the target host.
const reasonNotApplicable = "not-applicable"

// Chain runs strategies strictly in order and stops at the first sufficient
// document. Every strategy is recorded in the attempt list, including skipped
// ones, so failures can be diagnosed without re-running the request.
type Chain struct {
	strategies []Strategy
}

// NewChain builds the standard chain: direct fetch, Notion proxy, reader
// snapshot.
func NewChain(cfg Config) *Chain {
	cfg = cfg.withDefaults()
	return &Chain{
		strategies: []Strategy{
			NewDirect(cfg),
			NewNotion(cfg),
			NewJina(cfg),
		},
	}
}

// NewChainWith builds a chain from explicit strategies, for tests and
// callers with custom retrieval needs.
func NewChainWith(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Fetch runs the chain for target. On success it returns the winning
// document, the name of the strategy that produced it, and the full attempt
// list. On exhaustion the error is an *ExhaustedError carrying the attempts.
func (c *Chain) Fetch(ctx context.Context, target normalizer.Result) (Document, string, []Attempt, error) {
	attempts := make([]Attempt, 0, len(c.strategies))

	for _, strategy := range c.strategies {
		attempt := Attempt{Strategy: strategy.Name(), URL: target.URL}

		if !strategy.Applies(target) {
			attempt.Reason = reasonNotApplicable
			attempts = append(attempts, attempt)
			logger.Debug("strategy skipped", "strategy", strategy.Name(), "url", target.URL)
			continue
		}

		outcome := strategy.Fetch(ctx, target)
		switch {
		case outcome.doc != nil:
			attempt.OK = true
			attempt.Status = outcome.doc.StatusCode
			attempts = append(attempts, attempt)
			logger.Debug("strategy succeeded",
				"strategy", strategy.Name(), "url", outcome.doc.FinalURL)
			return *outcome.doc, strategy.Name(), attempts, nil

		case outcome.err != nil:
			attempt.Reason = outcome.err.Error()
			attempts = append(attempts, attempt)
			logger.Debug("strategy failed",
				"strategy", strategy.Name(), "url", target.URL, "error", outcome.err)

		default:
			attempt.Reason = outcome.reason
			attempts = append(attempts, attempt)
			logger.Debug("strategy insufficient",
				"strategy", strategy.Name(), "url", target.URL, "reason", outcome.reason)
		}

		// A canceled request should not cascade into pointless retries of
		// the remaining strategies.
		if ctx.Err() != nil {
			break
		}
	}

	return Document{}, "", attempts, &ExhaustedError{Attempts: attempts}
}
