package summarizer

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
)

// words lowercases s and splits it into runs of letters, digits and
// apostrophes.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// contentWords drops stopwords and fillers, including two-word fillers.
func contentWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		w := strings.Trim(tokens[i], "'")
		if next, ok := fillerPairs[w]; ok && i+1 < len(tokens) && strings.Trim(tokens[i+1], "'") == next {
			i++
			continue
		}
		if w == "" {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		if _, ok := fillers[w]; ok {
			continue
		}
		out = append(out, w)
	}
	return out
}

// sentence is a tokenized sentence with its position in the document.
type sentence struct {
	index   int
	text    string
	length  int
	content []string
}

func analyze(texts []string) []sentence {
	out := make([]sentence, len(texts))
	for i, t := range texts {
		tokens := words(t)
		out[i] = sentence{
			index:   i,
			text:    t,
			length:  len(tokens),
			content: contentWords(tokens),
		}
	}
	return out
}

// scoreFrequency weights each content word by its document count over the
// count of the most frequent word, then averages over sentence length.
func scoreFrequency(sents []sentence) []float64 {
	freq := make(map[string]int)
	maxFreq := 0
	for _, s := range sents {
		for _, w := range s.content {
			freq[w]++
			maxFreq = max(maxFreq, freq[w])
		}
	}

	scores := make([]float64, len(sents))
	if maxFreq == 0 {
		return scores
	}
	for i, s := range sents {
		if s.length == 0 {
			continue
		}
		var sum float64
		for _, w := range s.content {
			sum += float64(freq[w]) / float64(maxFreq)
		}
		scores[i] = sum / float64(s.length)
	}
	return scores
}

// scoreTFIDF treats each sentence as a document. idf is smoothed so a word
// present in every sentence still counts.
func scoreTFIDF(sents []sentence) []float64 {
	df := make(map[string]int)
	for _, s := range sents {
		seen := make(map[string]bool)
		for _, w := range s.content {
			if !seen[w] {
				seen[w] = true
				df[w]++
			}
		}
	}

	n := float64(len(sents))
	scores := make([]float64, len(sents))
	for i, s := range sents {
		if s.length == 0 {
			continue
		}
		tf := make(map[string]int)
		for _, w := range s.content {
			tf[w]++
		}
		var sum float64
		for w, c := range tf {
			sum += float64(c) * (math.Log(n/float64(df[w])) + 1)
		}
		scores[i] = sum / float64(s.length)
	}
	return scores
}

// extract picks the top K sentences by score, breaking ties by earlier
// position, and returns them in document order.
func extract(texts []string, scoring string, fraction float64) []string {
	sents := analyze(texts)

	var scores []float64
	if scoring == config.ScoringTFIDF {
		scores = scoreTFIDF(sents)
	} else {
		scores = scoreFrequency(sents)
	}

	k := max(1, int(math.Round(float64(len(sents))*fraction)))
	k = min(k, len(sents))

	ranked := make([]int, len(sents))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	selected := ranked[:k]
	sort.Ints(selected)

	out := make([]string, k)
	for i, idx := range selected {
		out[i] = sents[idx].text
	}
	return out
}
