package tips

import (
	"strconv"

	"gotips/domain/core"
)

// Column names a field of the enriched table.
type Column string

const (
	ColTotalBill     Column = "total_bill"
	ColTip           Column = "tip"
	ColSex           Column = "sex"
	ColSmoker        Column = "smoker"
	ColDay           Column = "day"
	ColTime          Column = "time"
	ColSize          Column = "size"
	ColTipPercentage Column = "tip_percentage"
	ColDayOrder      Column = "day_order"
	ColMealType      Column = "meal_type"
	ColBillSegment   Column = "bill_segment"
)

// BaseColumns are the columns every source must provide.
var BaseColumns = []Column{ColTotalBill, ColTip, ColSex, ColSmoker, ColDay, ColTime, ColSize}

// AllColumns is BaseColumns followed by the derived columns.
var AllColumns = []Column{
	ColTotalBill, ColTip, ColSex, ColSmoker, ColDay, ColTime, ColSize,
	ColTipPercentage, ColDayOrder, ColMealType, ColBillSegment,
}

// IsNumeric reports whether the column carries a real or integer value.
func (c Column) IsNumeric() bool {
	switch c {
	case ColTotalBill, ColTip, ColSize, ColTipPercentage, ColDayOrder:
		return true
	}
	return false
}

// IsCategorical reports whether the column can be counted or grouped on.
// size is both numeric and categorical, as in the party size distribution.
func (c Column) IsCategorical() bool {
	switch c {
	case ColSex, ColSmoker, ColDay, ColTime, ColSize, ColMealType, ColBillSegment:
		return true
	}
	return false
}

// ParseColumn validates a column name coming from a request.
func ParseColumn(s string) (Column, error) {
	for _, c := range AllColumns {
		if string(c) == s {
			return c, nil
		}
	}
	return "", core.ErrUnknownColumn
}

// CategoryRank orders category values of a column for display and tie-breaking.
// Unknown values sort after known ones.
func CategoryRank(c Column, value string) int {
	var order []string
	switch c {
	case ColDay:
		for _, d := range Days {
			order = append(order, string(d))
		}
	case ColTime:
		for _, t := range Times {
			order = append(order, string(t))
		}
	case ColMealType:
		for _, t := range Times {
			order = append(order, t.MealType())
		}
	case ColSex:
		for _, s := range Sexes {
			order = append(order, string(s))
		}
	case ColSmoker:
		for _, s := range Smokers {
			order = append(order, string(s))
		}
	case ColBillSegment:
		for _, s := range Segments {
			order = append(order, string(s))
		}
	case ColSize, ColDayOrder:
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		return 1 << 30
	}
	for i, v := range order {
		if v == value {
			return i
		}
	}
	return len(order)
}
