package matcher

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"tinybot/app/config"
	"tinybot/app/service/intent"

	"github.com/samber/do"
)

// Placeholder is the reply of an intent that has no responses.
const Placeholder = "..."

var tokenRe = regexp.MustCompile(`[a-z0-9']+`)

type Matcher struct {
	rng *rand.Rand
}

func New(di *do.Injector) (*Matcher, error) {
	cfg := do.MustInvoke[*config.Config](di)

	seed := cfg.Chat.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return NewWithRand(rand.New(rand.NewPCG(seed, seed>>1))), nil
}

func NewWithRand(rng *rand.Rand) *Matcher {
	return &Matcher{rng: rng}
}

// Tokenize lowercases text and returns its runs of ASCII letters, digits and
// apostrophes. Everything else is a separator.
func Tokenize(text string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)
	if tokens == nil {
		return []string{}
	}

	return tokens
}

// Score counts the user tokens found among the tokens of all keyword phrases.
// Phrases are split, so "thank you" indexes "thank" and "you" separately, and
// a repeated user token counts every time.
func Score(userTokens []string, keywords []string) int {
	index := make(map[string]struct{})
	for _, keyword := range keywords {
		for _, token := range Tokenize(keyword) {
			index[token] = struct{}{}
		}
	}

	score := 0
	for _, token := range userTokens {
		if _, ok := index[token]; ok {
			score++
		}
	}

	return score
}

// Best returns the first intent with the highest positive score, or nil and 0
// when nothing matches.
func Best(input string, intents []intent.Intent) (*intent.Intent, int) {
	tokens := Tokenize(input)

	var best *intent.Intent
	bestScore := 0

	for i := range intents {
		if s := Score(tokens, intents[i].Keywords); s > bestScore {
			best, bestScore = &intents[i], s
		}
	}

	return best, bestScore
}

// Respond picks one of the intent responses uniformly at random.
func (m *Matcher) Respond(item *intent.Intent) string {
	if item == nil || len(item.Responses) == 0 {
		return Placeholder
	}

	return item.Responses[m.rng.IntN(len(item.Responses))]
}
