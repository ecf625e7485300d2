package analysis

import (
	"math"

	"gotips/domain/core"
	"gotips/domain/tips"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CorrelationResult is a Pearson coefficient with its sample size and
// two-sided p-value for the null hypothesis of no linear relation.
type CorrelationResult struct {
	R      Metric `json:"r"`
	PValue Metric `json:"p_value"`
	N      int    `json:"n"`
}

// Correlation is the Pearson coefficient of two numeric columns over rows
// where both are defined. Undefined with fewer than two pairs or when either
// column is constant. The result is symmetric in its arguments.
func (v *View) Correlation(colA, colB tips.Column) (Metric, error) {
	res, err := v.CorrelationTest(colA, colB)
	if err != nil {
		return Undefined, err
	}
	return res.R, nil
}

// CorrelationTest adds a Student t significance test to Correlation.
func (v *View) CorrelationTest(colA, colB tips.Column) (CorrelationResult, error) {
	if !colA.IsNumeric() || !colB.IsNumeric() {
		return CorrelationResult{}, core.ErrUnknownColumn
	}

	x, y := v.pairs(colA, colB)
	res := CorrelationResult{N: len(x)}
	if len(x) < 2 {
		return res, nil
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return res, nil
	}
	r = math.Max(-1, math.Min(1, r))
	res.R = Defined(r)
	res.PValue = correlationPValue(r, len(x))
	return res, nil
}

func (v *View) pairs(colA, colB tips.Column) (x, y []float64) {
	for _, r := range v.rows {
		a, okA := r.Numeric(colA)
		b, okB := r.Numeric(colB)
		if okA && okB {
			x = append(x, a)
			y = append(y, b)
		}
	}
	return x, y
}

func correlationPValue(r float64, n int) Metric {
	df := float64(n - 2)
	if df < 1 {
		return Undefined
	}
	if math.Abs(r) >= 1 {
		return Defined(0)
	}
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return Defined(2 * dist.Survival(math.Abs(t)))
}

// Strength describes |r| in words for insight sentences.
func Strength(r Metric) string {
	if !r.Defined {
		return "undetermined"
	}
	direction := "positive"
	if r.Value < 0 {
		direction = "negative"
	}
	switch a := math.Abs(r.Value); {
	case a >= 0.7:
		return "strong " + direction
	case a >= 0.4:
		return "moderate " + direction
	case a >= 0.1:
		return "weak " + direction
	default:
		return "negligible"
	}
}
