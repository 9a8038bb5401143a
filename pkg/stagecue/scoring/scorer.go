package scoring

import "github.com/himanishpuri/StageCue/pkg/stagecue/guidance"

// Scorer scores takes using a guidance Deriver to read the context.
type Scorer struct {
	deriver guidance.Deriver
}

// NewScorer returns a Scorer backed by d, or by guidance.Default when d is
// nil.
func NewScorer(d guidance.Deriver) *Scorer {
	if d == nil {
		d = guidance.Default
	}
	return &Scorer{deriver: d}
}

// Analyze scores metrics against what ctx asks for. It never fails; odd
// inputs such as empty histories or out of range amplitudes just score low
// and are absorbed by the composite clamp.
func (s *Scorer) Analyze(ctx guidance.CharacterContext, m PerformanceMetrics) Result {
	vc := s.deriver.Derive(ctx).Characteristics
	return Evaluate(ctx, vc, m)
}

// Analyze scores with the built-in guidance table.
func Analyze(ctx guidance.CharacterContext, m PerformanceMetrics) Result {
	return NewScorer(nil).Analyze(ctx, m)
}

// Evaluate scores metrics against already derived vocal characteristics.
// ctx only supplies the words used in feedback.
func Evaluate(ctx guidance.CharacterContext, vc guidance.VocalCharacteristics, m PerformanceMetrics) Result {
	exp := Expectations(vc)
	scores := Score(m, exp)
	final := Composite(scores)

	f := feedback{ctx: ctx, vc: vc, exp: exp, scores: scores, metrics: m}
	return Result{
		Score:        final,
		Summary:      Summary(final, ctx),
		Strengths:    f.strengths(),
		Improvements: f.improvements(),
		PracticalTip: f.tip(),
		Components:   scores,
		Expectation:  exp,
	}
}
