package align

import (
	"github.com/antzucaro/matchr"
)

// soundsAlikeThreshold is the minimum Jaro-Winkler similarity for a
// substitution with overlapping Double Metaphone codes to count as a
// sound-alike.
const soundsAlikeThreshold = 0.70

// Summary counts the outcomes of an alignment.
type Summary struct {
	Correct      int     `json:"correct"`
	Substituted  int     `json:"substituted"`
	Missing      int     `json:"missing"`
	Extra        int     `json:"extra"`
	SoundsAlike  int     `json:"sounds_alike"`
	Accuracy     float64 `json:"accuracy"`
	EditDistance int     `json:"edit_distance"`
}

// Summarize tallies results. Accuracy is the share of aligned positions that
// are Correct, and 0 for an empty alignment.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Kind {
		case Correct:
			s.Correct++
		case Substitution:
			s.Substituted++
			if r.SoundsAlike {
				s.SoundsAlike++
			}
		case Missing:
			s.Missing++
		case Extra:
			s.Extra++
		}
	}
	s.EditDistance = s.Substituted + s.Missing + s.Extra
	if len(results) > 0 {
		s.Accuracy = float64(s.Correct) / float64(len(results))
	}
	return s
}

// Annotate returns a copy of results where each substitution carries the
// Jaro-Winkler similarity of its two words and whether they sound alike
// (shared Double Metaphone code and similarity at or above 0.70). It only
// labels positions; the alignment itself is unchanged.
func Annotate(results []Result) []Result {
	out := make([]Result, len(results))
	copy(out, results)
	for i := range out {
		if out[i].Kind != Substitution {
			continue
		}
		exp := Normalize(out[i].Expected)
		act := Normalize(out[i].Actual)
		if exp == "" || act == "" {
			continue
		}
		sim := matchr.JaroWinkler(exp, act, false)
		out[i].Similarity = sim
		out[i].SoundsAlike = sim >= soundsAlikeThreshold && metaphoneOverlap(exp, act)
	}
	return out
}

func metaphoneOverlap(a, b string) bool {
	ap, as := matchr.DoubleMetaphone(a)
	bp, bs := matchr.DoubleMetaphone(b)
	for _, x := range []string{ap, as} {
		if x == "" {
			continue
		}
		if x == bp || x == bs {
			return true
		}
	}
	return false
}
