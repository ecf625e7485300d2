package api

import (
	"net/url"

	"gotips/domain/tips"
	"gotips/internal/errors"
)

// Query keys of the filter controls
const (
	QueryDay     = "day"
	QueryTime    = "time"
	QueryApplied = "applied"
)

// SelectionFromQuery reads day/time filters from a query string. With the
// applied marker the lists are taken verbatim, so an absent list selects
// nothing. Without it, an absent list falls back to the matching side of
// fallback.
func SelectionFromQuery(q url.Values, fallback tips.Selection) (tips.Selection, bool, error) {
	_, applied := q[QueryApplied]
	days, hasDays := q[QueryDay]
	times, hasTimes := q[QueryTime]
	if !applied && !hasDays && !hasTimes {
		return fallback, false, nil
	}

	sel, err := tips.ParseSelection(days, times)
	if err != nil {
		return tips.Selection{}, false, errors.InvalidInput(err.Error())
	}
	if !applied {
		if !hasDays {
			sel.Days = fallback.Days
		}
		if !hasTimes {
			sel.Times = fallback.Times
		}
	}
	return sel, true, nil
}

// EncodeSelection is the inverse of SelectionFromQuery with the applied marker.
func EncodeSelection(sel tips.Selection) url.Values {
	q := url.Values{QueryApplied: {"1"}}
	for _, d := range sel.Days {
		q.Add(QueryDay, string(d))
	}
	for _, t := range sel.Times {
		q.Add(QueryTime, string(t))
	}
	return q
}
