package services

import "math/rand/v2"

// Shuffle permutes s in place (Fisher-Yates); every arrangement is equally likely.
func Shuffle[T any](rng *rand.Rand, s []T) {
	for k := len(s) - 1; k > 0; k-- {
		j := rng.IntN(k + 1)
		s[k], s[j] = s[j], s[k]
	}
}
