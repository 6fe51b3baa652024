package deck

// Rand is the source of randomness used for shuffling. *math/rand.Rand
// satisfies it.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// Shuffle randomly permutes seq[start:] in place. Elements before start are
// never moved.
func Shuffle(seq []string, start int, rng Rand) {
	if start < 0 {
		start = 0
	}

	// Fisher-Yates, walking down from the end of the slice.
	for n := len(seq); n-start > 1; n-- {
		j := start + rng.Intn(n-start)
		seq[n-1], seq[j] = seq[j], seq[n-1]
	}
}
