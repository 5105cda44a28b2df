// Package exam holds the net-score arithmetic and subject tables for the
// TYT and AYT mock exams.
package exam

// Net is the standard scoring formula: each wrong answer cancels a quarter
// of a correct one. The result may go negative; no floor is applied.
func Net(correct, incorrect int) float64 {
	return float64(correct) - 0.25*float64(incorrect)
}

// Total sums per-subject nets.
func Total(nets ...float64) float64 {
	var sum float64
	for _, n := range nets {
		sum += n
	}
	return sum
}

// Score is one subject's raw entry.
type Score struct {
	Correct   int
	Incorrect int
}

// TYTNets computes the four TYT subject nets and their total. Subjects
// missing from scores count as zero entries.
func TYTNets(scores map[string]Score) (map[string]float64, float64) {
	nets := make(map[string]float64, len(TYTSubjects))
	var total float64
	for _, sub := range TYTSubjects {
		n := Net(scores[sub.Key].Correct, scores[sub.Key].Incorrect)
		nets[sub.Key] = n
		total += n
	}
	return nets, total
}

// AYTNets computes nets for the two subjects of the given track only.
// Subjects outside the track do not appear in the returned map.
func AYTNets(track Track, scores map[string]Score) (map[string]float64, float64) {
	nets := make(map[string]float64, 2)
	var total float64
	for _, sub := range track.Subjects() {
		n := Net(scores[sub.Key].Correct, scores[sub.Key].Incorrect)
		nets[sub.Key] = n
		total += n
	}
	return nets, total
}
