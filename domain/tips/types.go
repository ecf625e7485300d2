package tips

import (
	"strings"

	"gotips/domain/core"
)

// Day is the day of the week a bill was paid. Only the four service days exist.
type Day string

const (
	Thu Day = "Thu"
	Fri Day = "Fri"
	Sat Day = "Sat"
	Sun Day = "Sun"
)

// Days lists every day in display order.
var Days = []Day{Thu, Fri, Sat, Sun}

// Order returns the display rank used for day_order (Thu=1 ... Sun=4), 0 if unknown.
func (d Day) Order() int {
	for i, day := range Days {
		if day == d {
			return i + 1
		}
	}
	return 0
}

// ParseDay accepts the canonical abbreviations plus the upstream "Thur" spelling.
func ParseDay(s string) (Day, error) {
	switch strings.TrimSpace(s) {
	case "Thu", "Thur", "Thursday":
		return Thu, nil
	case "Fri", "Friday":
		return Fri, nil
	case "Sat", "Saturday":
		return Sat, nil
	case "Sun", "Sunday":
		return Sun, nil
	}
	return "", core.NewUnknownCategoryError(string(ColDay), s)
}

// MealTime is the service a bill belongs to.
type MealTime string

const (
	Lunch  MealTime = "Lunch"
	Dinner MealTime = "Dinner"
)

// Times lists every meal time in display order.
var Times = []MealTime{Lunch, Dinner}

// MealType is the display label shown for a meal time.
func (t MealTime) MealType() string {
	switch t {
	case Lunch:
		return "Lunch service"
	case Dinner:
		return "Dinner service"
	}
	return ""
}

func ParseMealTime(s string) (MealTime, error) {
	switch strings.TrimSpace(s) {
	case "Lunch":
		return Lunch, nil
	case "Dinner":
		return Dinner, nil
	}
	return "", core.NewUnknownCategoryError(string(ColTime), s)
}

type Sex string

const (
	Male   Sex = "Male"
	Female Sex = "Female"
)

var Sexes = []Sex{Male, Female}

func ParseSex(s string) (Sex, error) {
	switch strings.TrimSpace(s) {
	case "Male":
		return Male, nil
	case "Female":
		return Female, nil
	}
	return "", core.NewUnknownCategoryError(string(ColSex), s)
}

type Smoker string

const (
	SmokerYes Smoker = "Yes"
	SmokerNo  Smoker = "No"
)

var Smokers = []Smoker{SmokerYes, SmokerNo}

func ParseSmoker(s string) (Smoker, error) {
	switch strings.TrimSpace(s) {
	case "Yes":
		return SmokerYes, nil
	case "No":
		return SmokerNo, nil
	}
	return "", core.NewUnknownCategoryError(string(ColSmoker), s)
}

// Segment buckets total_bill into (0,20], (20,40], (40,60], (60,100].
// The empty segment marks bills outside every bucket.
type Segment string

const (
	SegmentNone  Segment = ""
	SegmentUnder Segment = "<20"
	Segment20_40 Segment = "20-40"
	Segment40_60 Segment = "40-60"
	SegmentOver  Segment = ">60"
)

var Segments = []Segment{SegmentUnder, Segment20_40, Segment40_60, SegmentOver}

var segmentEdges = []float64{0, 20, 40, 60, 100}

// SegmentFor returns the bucket whose half-open interval (lo, hi] holds bill.
func SegmentFor(bill float64) Segment {
	for i, seg := range Segments {
		if bill > segmentEdges[i] && bill <= segmentEdges[i+1] {
			return seg
		}
	}
	return SegmentNone
}
