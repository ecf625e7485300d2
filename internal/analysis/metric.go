package analysis

import (
	"fmt"
	"math"
	"strconv"
)

// Metric is a scalar aggregate that may be undefined, for example the mean of
// an empty view. Undefined metrics marshal to JSON null.
type Metric struct {
	Value   float64
	Defined bool
}

// Undefined is the zero Metric.
var Undefined = Metric{}

// Defined wraps v; NaN and infinities become Undefined.
func Defined(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return Metric{Value: v, Defined: true}
}

// Format renders the value with a fmt verb, or "n/a".
func (m Metric) Format(verb string) string {
	if !m.Defined {
		return "n/a"
	}
	return fmt.Sprintf(verb, m.Value)
}

func (m Metric) String() string {
	return m.Format("%g")
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(m.Value, 'g', -1, 64)), nil
}
