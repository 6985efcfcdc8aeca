package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sync"
	"time"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/workflow"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "layout.html"

// Page is the data every template receives.
type Page struct {
	Title   string
	User    *models.User
	Flash   string
	Content any
}

// Renderer holds the parsed page templates, one set per page file, each combined
// with the shared layout.
type Renderer struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		cache: make(map[string]*template.Template),
		funcs: template.FuncMap{
			// raw emits free text as markup.
			"raw":   func(s string) template.HTML { return template.HTML(s) },
			"rawp":  func(s *string) template.HTML { return template.HTML(deref(s)) },
			"deref": deref,
			"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
			"date":  formatTime,
			"datep": formatTimePtr,
			"title": actionTitle,
			"needs": actionNeeds,
		},
	}
	if err := r.load(templateFS); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) load(fsys fs.FS) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return err
	}
	for _, file := range files {
		name := path.Base(file)
		if name == layoutFile {
			continue
		}
		tmpl, err := template.New(name).Funcs(r.funcs).ParseFS(fsys, "templates/"+layoutFile, file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("Failed to parse template")
			return err
		}
		r.cache[name] = tmpl
		log.Debug().Str("name", name).Msg("Cached template")
	}
	return nil
}

// Render executes the named page inside the layout. Output is buffered so a failed
// execution writes nothing.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	r.mu.RLock()
	tmpl, ok := r.cache[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func deref(s *string) string {
	v, _ := models.StringValue(s)
	return v
}

func formatTimePtr(t *time.Time) string {
	v, ok := models.TimeValue(t)
	if !ok {
		return ""
	}
	return formatTime(v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

var actionTitles = map[workflow.Action]string{
	workflow.ActionCloseAuction:   "Close auction",
	workflow.ActionSubmitShipping: "Submit shipping address",
	workflow.ActionMarkShipped:    "Mark as shipped",
	workflow.ActionConfirmReceipt: "Confirm receipt",
	workflow.ActionFileDispute:    "File a dispute",
}

func actionTitle(a workflow.Action) string {
	if t, ok := actionTitles[a]; ok {
		return t
	}
	return string(a)
}

// actionNeeds names the form field an action asks for, if any.
func actionNeeds(a workflow.Action) string {
	switch a {
	case workflow.ActionSubmitShipping:
		return "shipping_address"
	case workflow.ActionMarkShipped:
		return "tracking_number"
	case workflow.ActionFileDispute:
		return "reason"
	}
	return ""
}
