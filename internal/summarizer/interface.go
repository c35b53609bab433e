package summarizer

import "context"

// Strategy records how a summary was produced.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyVerbatim
	StrategyAbstractive
	StrategyExtractive
)

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyVerbatim:
		return "verbatim"
	case StrategyAbstractive:
		return "abstractive"
	case StrategyExtractive:
		return "extractive"
	}
	return "unknown"
}

// Summary is the result of Summarize. Fallback is set when an abstractive
// backend was configured but could not produce the summary.
type Summary struct {
	Text     string
	Strategy Strategy
	Fallback error
}

// Summarizer condenses transcript text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) Summary
	Close() error
}

// Backend produces an abstractive summary of roughly minWords to maxWords.
type Backend interface {
	Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error)
	Name() string
	Close() error
}
