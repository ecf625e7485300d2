package ui

import (
	"bytes"

	"gotips/domain/tips"
	"gotips/internal/analysis"
	"gotips/internal/api"
	"gotips/internal/errors"
	"gotips/internal/export"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// dashboardPage is the data behind dashboard.html
type dashboardPage struct {
	Snapshot      *analysis.Snapshot
	Days          []string
	Times         []string
	SelectedDays  []string
	SelectedTimes []string
	ExportQuery   string
}

// handleIndex renders the dashboard for the visitor's current selection.
// Filters submitted with the applied marker replace the stored selection.
func (s *Server) handleIndex(c *gin.Context) {
	view, err := s.sessionView(c, true)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	snapshot, err := analysis.Dashboard(view, s.options)
	if err != nil {
		s.abortWithError(c, errors.Wrap(err, "failed to build dashboard"))
		return
	}

	page := dashboardPage{
		Snapshot:    snapshot,
		ExportQuery: api.EncodeSelection(view.Selection()).Encode(),
	}
	for _, d := range tips.Days {
		page.Days = append(page.Days, string(d))
	}
	for _, t := range tips.Times {
		page.Times = append(page.Times, string(t))
	}
	for _, d := range view.Selection().Days {
		page.SelectedDays = append(page.SelectedDays, string(d))
	}
	for _, t := range view.Selection().Times {
		page.SelectedTimes = append(page.SelectedTimes, string(t))
	}

	s.logger.Trace("[Dashboard] Rendering %d rows for session %s", view.Count(), sessionID(c))
	s.renderTemplate(c, "dashboard.html", page)
}

// handleExport streams the filtered rows, describe table and top tips as xlsx
func (s *Server) handleExport(c *gin.Context) {
	view, err := s.sessionView(c, false)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, view, s.options.TopN); err != nil {
		s.abortWithError(c, errors.Wrap(err, "failed to export workbook"))
		return
	}
	s.logger.Info("[Export] Workbook with %d rows (%d bytes)", view.Count(), buf.Len())

	c.Header("Content-Disposition", `attachment; filename="tips.xlsx"`)
	c.Data(200, xlsxContentType, buf.Bytes())
}

// sessionView filters the table with the request's selection, falling back
// to the session's stored one. When remember is set an explicit selection is
// stored for later visits.
func (s *Server) sessionView(c *gin.Context, remember bool) (*analysis.View, error) {
	id := sessionID(c)
	sel, explicit, err := api.SelectionFromQuery(c.Request.URL.Query(), s.sessions.Selection(id))
	if err != nil {
		return nil, err
	}
	if explicit && remember && id != "" {
		s.sessions.Save(id, sel)
	}

	table, err := s.tables.Prepare(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return analysis.FilterSelection(table, sel), nil
}
