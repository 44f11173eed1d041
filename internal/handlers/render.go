package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Renderer executes page templates. Each view is parsed together with
// base.html once, at construction.
type Renderer struct {
	views map[string]*template.Template
	log   logrus.FieldLogger
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"datetime": func(t time.Time) string {
		return t.Format("Mon, 02 Jan 2006 15:04")
	},
	"lower": strings.ToLower,
}

func NewRenderer(templates fs.FS, log logrus.FieldLogger, views ...string) (*Renderer, error) {
	r := &Renderer{views: make(map[string]*template.Template, len(views)), log: log}
	for _, view := range views {
		tmpl, err := template.New(view).Funcs(funcs).ParseFS(templates, "base.html", view)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", view, err)
		}
		r.views[view] = tmpl
	}
	return r, nil
}

// Render writes the view wrapped in the base layout, or only its content
// block for htmx requests.
func (r *Renderer) Render(c *gin.Context, view string, data any) {
	tmpl, ok := r.views[view]
	if !ok {
		r.log.WithField("view", view).Error("unknown view")
		c.String(http.StatusInternalServerError, "Template error")
		return
	}

	target := "base.html"
	if c.GetHeader("HX-Request") == "true" {
		target = "content"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, target, data); err != nil {
		r.log.WithError(err).WithField("view", view).Error("template execution failed")
		c.String(http.StatusInternalServerError, "Template error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
