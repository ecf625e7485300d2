package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"gotips/internal/analysis"
	"gotips/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(m analysis.Metric) string {
			if !m.Defined {
				return "n/a"
			}
			return "$" + grouped("%.2f", m.Value)
		},
		"pct":   func(m analysis.Metric) string { return m.Format("%.1f%%") },
		"fixed": func(m analysis.Metric, digits int) string { return m.Format(fmt.Sprintf("%%.%df", digits)) },
		"count": func(n int) string { return grouped("%d", n) },
		"cell": func(v interface{}) string {
			switch t := v.(type) {
			case nil:
				return "n/a"
			case float64:
				return fmt.Sprintf("%.2f", t)
			default:
				return fmt.Sprint(t)
			}
		},
		"markdown": renderMarkdown,
		"contains": func(list []string, v string) bool {
			for _, x := range list {
				if x == v {
					return true
				}
			}
			return false
		},
	}
}

// loadTemplates parses every html file under ui/templates
func (s *Server) loadTemplates() error {
	templatesFS, err := fs.Sub(s.files, "ui/templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	files, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates found")
	}
	s.logger.Debug("[TemplateInit] Found %d template files: %v", len(files), files)

	s.templates, err = template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	return nil
}

// renderTemplate renders into a buffer first so template errors never leave
// a half-written page
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("[Render] Template error for %s: %v", templateName, err)
		s.abortWithError(c, errors.Wrap(err, "template rendering failed"))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code == "UNKNOWN" {
		code = errors.CodeInternalError
	}
	c.AbortWithStatusJSON(errors.HTTPStatus(err), gin.H{"error": err.Error(), "code": code})
}

// renderMarkdown converts insight markdown to HTML. A parser instance cannot
// be reused, so one is built per call.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}

// grouped formats v with English thousands separators
func grouped(format string, v interface{}) string {
	return message.NewPrinter(language.English).Sprintf(format, v)
}
