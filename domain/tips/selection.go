package tips

// Selection is one visitor's filter: the days and meal times to keep.
// An empty set on either side selects nothing.
type Selection struct {
	Days  []Day      `json:"days"`
	Times []MealTime `json:"times"`
}

// AllSelection selects every row, matching the dashboard's initial state.
func AllSelection() Selection {
	return Selection{
		Days:  append([]Day(nil), Days...),
		Times: append([]MealTime(nil), Times...),
	}
}

// ParseSelection validates raw request values. Duplicates are dropped and the
// result is returned in display order.
func ParseSelection(days, times []string) (Selection, error) {
	var sel Selection
	seenDays := map[Day]bool{}
	for _, raw := range days {
		d, err := ParseDay(raw)
		if err != nil {
			return Selection{}, err
		}
		seenDays[d] = true
	}
	for _, d := range Days {
		if seenDays[d] {
			sel.Days = append(sel.Days, d)
		}
	}

	seenTimes := map[MealTime]bool{}
	for _, raw := range times {
		t, err := ParseMealTime(raw)
		if err != nil {
			return Selection{}, err
		}
		seenTimes[t] = true
	}
	for _, t := range Times {
		if seenTimes[t] {
			sel.Times = append(sel.Times, t)
		}
	}
	return sel, nil
}

// Matches reports whether r falls inside the selection.
func (s Selection) Matches(r Record) bool {
	return s.HasDay(r.Day) && s.HasTime(r.Time)
}

func (s Selection) HasDay(d Day) bool {
	for _, x := range s.Days {
		if x == d {
			return true
		}
	}
	return false
}

func (s Selection) HasTime(t MealTime) bool {
	for _, x := range s.Times {
		if x == t {
			return true
		}
	}
	return false
}

// IsEmpty is true when the selection cannot match any row.
func (s Selection) IsEmpty() bool {
	return len(s.Days) == 0 || len(s.Times) == 0
}
