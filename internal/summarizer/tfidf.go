package summarizer

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"github.com/formbricks/insight/internal/textproc"
)

// tfidfScores weights every sentence as a bag of words and returns one score
// per sentence, in input order.
//
// For a vocabulary restricted to the maxFeatures most frequent terms:
//
//	w(t,s)   = count(t,s) * (ln((1+n)/(1+df(t))) + 1)
//	row(s)   = w(·,s) / ||w(·,s)||₂
//	score(s) = Σ_t row(t,s)
//
// where n is the number of sentences and df(t) the number of sentences
// containing t. Sentences with no vocabulary terms score 0.
func tfidfScores(sentences []string, maxFeatures int) []float64 {
	counts := make([]map[string]int, len(sentences))
	totals := make(map[string]int)
	docFreq := make(map[string]int)

	for i, s := range sentences {
		counts[i] = make(map[string]int)
		for _, tok := range textproc.Tokenize(s) {
			counts[i][tok]++
			totals[tok]++
		}

		for tok := range counts[i] {
			docFreq[tok]++
		}
	}

	vocab := limitVocabulary(totals, maxFeatures)
	n := float64(len(sentences))

	scores := make([]float64, len(sentences))
	for i, bag := range counts {
		// Sorted terms keep the float sums identical between runs, so exact ties stay ties.
		terms := slices.Sorted(maps.Keys(bag))

		row := make([]float64, 0, len(terms))
		for _, tok := range terms {
			if _, ok := vocab[tok]; !ok {
				continue
			}

			idf := math.Log((1+n)/(1+float64(docFreq[tok]))) + 1
			row = append(row, float64(bag[tok])*idf)
		}

		normalizeL2(row)

		for _, w := range row {
			scores[i] += w
		}
	}

	return scores
}

// limitVocabulary keeps the maxFeatures terms with the highest corpus
// frequency, breaking ties by term. maxFeatures <= 0 keeps everything.
func limitVocabulary(totals map[string]int, maxFeatures int) map[string]struct{} {
	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}

	if maxFeatures > 0 && len(terms) > maxFeatures {
		slices.SortFunc(terms, func(a, b string) int {
			if c := cmp.Compare(totals[b], totals[a]); c != 0 {
				return c
			}

			return cmp.Compare(a, b)
		})
		terms = terms[:maxFeatures]
	}

	vocab := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		vocab[t] = struct{}{}
	}

	return vocab
}

// normalizeL2 scales vector in place to unit length. A zero vector is left as is.
func normalizeL2(vector []float64) {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += v * v
	}

	if sumSquares == 0 {
		return
	}

	magnitude := math.Sqrt(sumSquares)
	for i := range vector {
		vector[i] /= magnitude
	}
}
