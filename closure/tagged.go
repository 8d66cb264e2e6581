package closure

// Tagger binds fixed into combine and returns the resulting single-argument function.
// It holds no mutable state.
func Tagger[F, I, O any](fixed F, combine func(F, I) O) func(I) O {
	return func(input I) O {
		return combine(fixed, input)
	}
}

// Prefixer returns a function that prefixes its input with fixed and a space.
func Prefixer(fixed string) func(string) string {
	return Tagger(fixed, func(prefix, s string) string {
		return prefix + " " + s
	})
}
