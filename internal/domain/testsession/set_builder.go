package testsession

import (
	"math/rand"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
)

// BuildSet draws a fresh question set from the bank according to the
// quotas. Each category pool is shuffled independently and a
// quota-length prefix taken, then the combined set is reshuffled so
// categories are not positionally grouped.
//
// The rng is injectable so tests can seed it; a nil rng falls back to
// the shared math/rand source. BuildSet is pure over the bank snapshot
// and restartable: every call shuffles from scratch.
func BuildSet(bank *questionbank.Bank, quotas map[questionbank.Category]int, rng *rand.Rand) ([]questionbank.Question, error) {
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}

	// Check all quotas before drawing anything, so a failed build has
	// no partial effect.
	for _, category := range questionbank.Categories() {
		need := quotas[category]
		if have := bank.PoolSize(category); have < need {
			return nil, &InsufficientBankError{Category: category, Have: have, Need: need}
		}
	}

	var set []questionbank.Question
	for _, category := range questionbank.Categories() {
		need := quotas[category]
		if need == 0 {
			continue
		}
		pool := bank.Pool(category)
		shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		set = append(set, pool[:need]...)
	}

	shuffle(len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})
	return set, nil
}
