package exam

// ClampScore constrains a subject entry to its question count. Each field is
// clamped to [0, max] on its own; when the pair still exceeds max, the field
// that was NOT just edited absorbs the overflow so the sum lands exactly on
// max. The edited field always keeps the value the user typed (after its own
// range clamp).
func ClampScore(correct, incorrect, max int, editedCorrect bool) (int, int) {
	correct = clampInt(correct, 0, max)
	incorrect = clampInt(incorrect, 0, max)

	if correct+incorrect > max {
		if editedCorrect {
			incorrect = max - correct
		} else {
			correct = max - incorrect
		}
	}
	return correct, incorrect
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
