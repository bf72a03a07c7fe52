package template

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rollerweb/roller/internal/application/planet/dto"
	"github.com/rollerweb/roller/internal/application/planet/usecases"
	"github.com/rollerweb/roller/internal/shared/logger"
)

// templateExtensions are the file suffixes loaded from the planet template directory.
var templateExtensions = []string{".html", ".htm", ".xml", ".tmpl"}

// PlanetTemplateLoader parses the planet page templates and renders them by
// file name, e.g. "index.html" or "group.html".
type PlanetTemplateLoader struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
	path      string
	logger    logger.Interface
}

var _ usecases.PageRenderer = (*PlanetTemplateLoader)(nil)

// NewPlanetTemplateLoader creates a loader for the templates under path.
func NewPlanetTemplateLoader(path string, logger logger.Interface) *PlanetTemplateLoader {
	return &PlanetTemplateLoader{
		templates: make(map[string]*template.Template),
		path:      path,
		logger:    logger,
	}
}

// funcs are available to every planet template.
var funcs = template.FuncMap{
	// safeHTML marks already sanitized markup so it is not escaped again.
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	"lower":    strings.ToLower,
}

// Load parses every template file in the directory. Each page is parsed on its
// own together with any "_*" partials, so pages may define blocks with the
// same names without clobbering each other.
func (l *PlanetTemplateLoader) Load() error {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		l.logger.Warnw("planet template directory not found", "path", l.path)
		return nil
	}

	entries, err := os.ReadDir(l.path)
	if err != nil {
		return fmt.Errorf("read template dir: %w", err)
	}

	var pages, partials []string
	for _, e := range entries {
		if e.IsDir() || !hasTemplateExtension(e.Name()) {
			continue
		}
		full := filepath.Join(l.path, e.Name())
		if strings.HasPrefix(e.Name(), "_") {
			partials = append(partials, full)
			continue
		}
		pages = append(pages, full)
	}

	loaded := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := filepath.Base(page)
		files := append([]string{page}, partials...)
		tmpl, err := template.New(name).Funcs(funcs).ParseFiles(files...)
		if err != nil {
			l.logger.Errorw("failed to parse planet template", "file", page, "error", err)
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		loaded[name] = tmpl
		l.logger.Debugw("loaded planet template", "file", name)
	}

	l.mu.Lock()
	l.templates = loaded
	l.mu.Unlock()

	if len(loaded) == 0 {
		l.logger.Warnw("no planet templates loaded", "path", l.path)
	} else {
		l.logger.Infow("planet templates loaded", "count", len(loaded))
	}
	return nil
}

func hasTemplateExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range templateExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Has reports whether a page template with this file name was loaded.
func (l *PlanetTemplateLoader) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.templates[name]
	return ok
}

func (l *PlanetTemplateLoader) Render(w io.Writer, name string, data dto.PageData) error {
	l.mu.RLock()
	tmpl, ok := l.templates[name]
	l.mu.RUnlock()
	if !ok {
		return fmt.Errorf("planet template %q not found in %s", name, l.path)
	}
	return tmpl.ExecuteTemplate(w, name, data)
}

// GetLoadedTemplates returns the loaded page names in sorted order.
func (l *PlanetTemplateLoader) GetLoadedTemplates() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
