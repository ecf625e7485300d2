package tips

import (
	"math"
	"strconv"
)

// Record is one enriched transaction. Derived fields are filled by Enrich.
type Record struct {
	ID        int      `json:"id"`
	TotalBill float64  `json:"total_bill"`
	Tip       float64  `json:"tip"`
	Sex       Sex      `json:"sex"`
	Smoker    Smoker   `json:"smoker"`
	Day       Day      `json:"day"`
	Time      MealTime `json:"time"`
	Size      int      `json:"size"`

	// TipPercentage is NaN when total_bill is not positive.
	TipPercentage float64 `json:"-"`
	DayOrder      int     `json:"day_order"`
	MealType      string  `json:"meal_type"`
	BillSegment   Segment `json:"bill_segment"`
}

// Enrich computes the derived columns of r.
func Enrich(r Record) Record {
	if r.TotalBill > 0 {
		r.TipPercentage = r.Tip / r.TotalBill * 100
	} else {
		r.TipPercentage = math.NaN()
	}
	r.DayOrder = r.Day.Order()
	r.MealType = r.Time.MealType()
	r.BillSegment = SegmentFor(r.TotalBill)
	return r
}

// HasTipPercentage is false for rows whose percentage is undefined.
func (r Record) HasTipPercentage() bool {
	return !math.IsNaN(r.TipPercentage)
}

// Numeric returns the value of a numeric column; ok is false for
// non-numeric columns and undefined values.
func (r Record) Numeric(c Column) (float64, bool) {
	var v float64
	switch c {
	case ColTotalBill:
		v = r.TotalBill
	case ColTip:
		v = r.Tip
	case ColSize:
		v = float64(r.Size)
	case ColTipPercentage:
		v = r.TipPercentage
	case ColDayOrder:
		v = float64(r.DayOrder)
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Category returns the string label of a categorical column.
func (r Record) Category(c Column) (string, bool) {
	switch c {
	case ColSex:
		return string(r.Sex), true
	case ColSmoker:
		return string(r.Smoker), true
	case ColDay:
		return string(r.Day), true
	case ColTime:
		return string(r.Time), true
	case ColSize:
		return strconv.Itoa(r.Size), true
	case ColDayOrder:
		return strconv.Itoa(r.DayOrder), true
	case ColMealType:
		return r.MealType, true
	case ColBillSegment:
		if r.BillSegment == SegmentNone {
			return "", false
		}
		return string(r.BillSegment), true
	}
	return "", false
}

// Value returns any column as a JSON/spreadsheet friendly value; undefined
// percentages come back as nil.
func (r Record) Value(c Column) interface{} {
	if c.IsNumeric() {
		v, ok := r.Numeric(c)
		if !ok {
			return nil
		}
		if c == ColSize || c == ColDayOrder {
			return int(v)
		}
		return v
	}
	s, ok := r.Category(c)
	if !ok {
		return nil
	}
	return s
}
