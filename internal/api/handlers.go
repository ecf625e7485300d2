package api

import (
	"encoding/json"
	"net/http"

	"gotips/domain/core"
	"gotips/domain/tips"
	"gotips/internal/analysis"
	"gotips/internal/dataset"
	"gotips/internal/errors"

	"github.com/go-chi/chi/v5"
)

const maxTopN = 244

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := a.tables.Prepare(r.Context()); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	v, err := a.view(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	snapshot, err := analysis.Dashboard(v, a.options)
	if err != nil {
		a.writeError(w, r, errors.Wrap(err, "failed to build snapshot"))
		return
	}
	a.logger.Trace("[API] Snapshot built for %d rows", v.Count())
	writeJSON(w, http.StatusOK, snapshot)
}

func (a *API) handleRows(w http.ResponseWriter, r *http.Request) {
	v, err := a.view(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	rows, err := v.Project(tips.AllColumns)
	if err != nil {
		a.writeError(w, r, errors.Wrap(err, "failed to project rows"))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *API) handleDescribe(w http.ResponseWriter, r *http.Request) {
	v, err := a.view(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v.Describe())
}

func (a *API) handleTop(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", a.options.TopN, maxTopN)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	col := tips.ColTipPercentage
	if raw := r.URL.Query().Get("by"); raw != "" {
		if col, err = numericColumn(raw); err != nil {
			a.writeError(w, r, err)
			return
		}
	}

	v, err := a.view(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	top, err := v.TopN(col, n, analysis.TopColumns)
	if err != nil {
		a.writeError(w, r, errors.Wrap(err, "failed to rank rows"))
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (a *API) handleValueCounts(w http.ResponseWriter, r *http.Request) {
	col, err := categoricalColumn(chi.URLParam(r, "column"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	v, err := a.view(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	counts, err := v.ValueCounts(col)
	if err != nil {
		a.writeError(w, r, errors.Wrap(err, "failed to count values"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"column": col,
		"total":  v.Count(),
		"counts": counts,
	})
}

func (a *API) handleCrosstab(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rowCol, err := categoricalColumn(defaultString(q.Get("rows"), string(tips.ColDay)))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	colCol, err := categoricalColumn(defaultString(q.Get("cols"), string(tips.ColTime)))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	v, err := a.view(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	m, err := v.Crosstab(rowCol, colCol)
	if err != nil {
		a.writeError(w, r, errors.Wrap(err, "failed to cross-tabulate"))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type columnInfo struct {
	Name        tips.Column `json:"name"`
	Numeric     bool        `json:"numeric"`
	Categorical bool        `json:"categorical"`
	Derived     bool        `json:"derived"`
}

// schemaReporter is implemented by providers that keep the load report, like dataset.Preparer
type schemaReporter interface {
	Report() *dataset.SchemaReport
}

func (a *API) handleSchema(w http.ResponseWriter, r *http.Request) {
	table, err := a.tables.Prepare(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	columns := make([]columnInfo, 0, len(tips.AllColumns))
	for i, c := range tips.AllColumns {
		columns = append(columns, columnInfo{
			Name:        c,
			Numeric:     c.IsNumeric(),
			Categorical: c.IsCategorical(),
			Derived:     i >= len(tips.BaseColumns),
		})
	}
	body := map[string]interface{}{
		"rows":                     table.Len(),
		"undefined_tip_percentage": table.UndefinedPercentageRows(),
		"columns":                  columns,
	}
	if reporter, ok := a.tables.(schemaReporter); ok {
		if report := reporter.Report(); report != nil {
			body["report"] = report
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func numericColumn(raw string) (tips.Column, error) {
	col, err := tips.ParseColumn(raw)
	if err != nil || !col.IsNumeric() {
		return "", errors.InvalidInput("unknown numeric column: " + raw)
	}
	return col, nil
}

func categoricalColumn(raw string) (tips.Column, error) {
	col, err := tips.ParseColumn(raw)
	if err != nil || !col.IsCategorical() {
		return "", errors.InvalidInput("unknown categorical column: " + raw)
	}
	return col, nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// writeError renders {"error", "code"} with the status mapped from the code
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.IsAppError(err) {
		code := errors.CodeInternalError
		switch {
		case core.IsInvalidInput(err):
			code = errors.CodeInvalidInput
		case core.IsPreparationError(err):
			code = errors.CodeDataUnavailable
		}
		err = errors.New(code, err.Error())
	}
	code := errors.GetCode(err)
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("[API] %s %s failed: %v", r.Method, r.URL.Path, err)
	} else {
		a.logger.Debug("[API] %s %s rejected: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": code})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
