package study

import "math"

// Stats summarises a pass. Accuracy is measured against the total number
// of cards rather than the number answered, so it only reaches its final
// value once the pass is finished.
type Stats struct {
	Total     int     `json:"total"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Answered  int     `json:"answered"`
	Accuracy  int     `json:"accuracy"`
	Progress  float64 `json:"progress"`
}

// Stats recomputes statistics from the current outcomes.
func (s *Session) Stats() Stats {
	st := Stats{Total: len(s.outcomes)}
	if st.Total == 0 {
		return st
	}

	for _, o := range s.outcomes {
		switch o {
		case Correct:
			st.Correct++
		case Incorrect:
			st.Incorrect++
		}
	}
	st.Answered = st.Correct + st.Incorrect

	total := float64(st.Total)
	st.Accuracy = int(math.Round(float64(st.Correct) / total * 100))
	st.Progress = math.Min(100, float64(st.Answered)/total*100)

	return st
}
