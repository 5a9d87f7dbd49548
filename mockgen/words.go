package mockgen

import (
	"math/rand"
	"strings"
)

var firstNames = []string{"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "William", "Elizabeth"}
var lastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
var loremWords = []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit", "sed", "do", "eiusmod", "tempor"}

const wordAlphabet = "abcdefghijklmnopqrstuvwxyz"

// randomWord returns a lowercase pseudo-word with length in [minLen, maxLen].
func randomWord(rng *rand.Rand, minLen, maxLen int) string {
	if maxLen < minLen {
		maxLen = minLen
	}
	n := minLen
	if maxLen > minLen {
		n = minLen + rng.Intn(maxLen-minLen+1)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(wordAlphabet[rng.Intn(len(wordAlphabet))])
	}
	return b.String()
}

func fullName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

func randomSentence(rng *rand.Rand) string {
	n := 5 + rng.Intn(6)
	words := make([]string, n)
	for i := range words {
		words[i] = loremWords[rng.Intn(len(loremWords))]
	}
	s := strings.Join(words, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
