package commitments

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"greensignal-engine/internal/normalize"
)

// levenshtein measures edit distance over characters, not bytes; accented
// names must score the same as their ASCII neighbours would.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// ratioScore is 100 minus the normalized edit distance, rounded.
func ratioScore(a, b string) int {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 100
	}
	return int(math.Round((1 - float64(levenshtein(a, b))/float64(maxLen)) * 100))
}

// tokenSetRatio compares the two names over their sorted token sets, using
// the sorted intersection as a pivot so word order and partial suffix noise
// do not penalize otherwise identical names.
func tokenSetRatio(a, b string) int {
	tokensA := uniqueTokens(a)
	tokensB := uniqueTokens(b)

	var intersection, diffA, diffB []string
	inB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		inB[t] = true
	}
	inA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		inA[t] = true
		if inB[t] {
			intersection = append(intersection, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for _, t := range tokensB {
		if !inA[t] {
			diffB = append(diffB, t)
		}
	}

	sortedIntersection := joinSorted(intersection)
	combinedA := joinSorted(append(append([]string{}, intersection...), diffA...))
	combinedB := joinSorted(append(append([]string{}, intersection...), diffB...))

	best := ratioScore(sortedIntersection, combinedA)
	if s := ratioScore(sortedIntersection, combinedB); s > best {
		best = s
	}
	if s := ratioScore(combinedA, combinedB); s > best {
		best = s
	}
	return best
}

func uniqueTokens(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range normalize.Tokens(s) {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func joinSorted(tokens []string) string {
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
