package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// verbatimLimit is the sentence count at or below which text is returned
// unchanged.
const verbatimLimit = 3

// Summarize returns the verbatim text for short inputs, otherwise an
// abstractive summary when a backend is configured and answers, otherwise
// an extractive one. It never fails; backend errors land in Summary.Fallback.
func (s *implSummarizer) Summarize(ctx context.Context, text string) Summary {
	if strings.TrimSpace(text) == "" {
		return Summary{Strategy: StrategyNone}
	}

	sents := s.sentences(text)
	if len(sents) <= verbatimLimit {
		s.logger.Info(ctx, "Text has %d sentences, returning it unchanged", len(sents))
		return Summary{Text: truncate(text, s.opts.MaxChars), Strategy: StrategyVerbatim}
	}

	var fallback error
	if s.backend != nil {
		out, err := s.abstractive(ctx, text)
		if err == nil {
			return Summary{Text: truncate(out, s.opts.MaxChars), Strategy: StrategyAbstractive}
		}
		fallback = fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, s.backend.Name(), err)
		s.logger.Warn(ctx, "Abstractive summary failed, using extractive: %v", err)
	}

	picked := extract(sents, s.opts.Scoring, s.opts.Fraction)
	s.logger.Info(ctx, "Extracted %d of %d sentences (%s scoring)", len(picked), len(sents), s.opts.Scoring)

	return Summary{
		Text:     truncate(strings.Join(picked, " "), s.opts.MaxChars),
		Strategy: StrategyExtractive,
		Fallback: fallback,
	}
}

var errEmptySummary = errors.New("backend returned empty summary")

func (s *implSummarizer) abstractive(ctx context.Context, text string) (string, error) {
	input := limitWords(text, s.opts.MaxInputWords)
	out, err := s.backend.Summarize(ctx, input, s.opts.MinLength, s.opts.MaxLength)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errEmptySummary
	}
	return out, nil
}

// sentences splits text with the Punkt tokenizer and drops blank results.
func (s *implSummarizer) sentences(text string) []string {
	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *implSummarizer) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}
