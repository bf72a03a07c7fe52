package entry

import (
	"sort"

	domain "github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/shared/services/content"
)

// Plugin transforms entry text at render time. An entry lists the plugins it
// uses by Name.
type Plugin interface {
	Name() string
	Description() string
	Render(e *domain.Entry, text string) (string, error)
}

// PluginRegistry holds the plugins available to entries.
type PluginRegistry struct {
	plugins map[string]Plugin
}

func NewPluginRegistry(plugins ...Plugin) *PluginRegistry {
	r := &PluginRegistry{plugins: make(map[string]Plugin, len(plugins))}
	for _, p := range plugins {
		r.plugins[p.Name()] = p
	}
	return r
}

// DefaultPlugins is the plugin set the server ships with.
func DefaultPlugins() *PluginRegistry {
	return NewPluginRegistry(ObfuscateEmailPlugin{})
}

func (r *PluginRegistry) Get(name string) (Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// List returns the plugins sorted by name.
func (r *PluginRegistry) List() []Plugin {
	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ObfuscateEmailPlugin hides addresses from harvesters.
type ObfuscateEmailPlugin struct{}

func (ObfuscateEmailPlugin) Name() string { return "Email Scrambler" }

func (ObfuscateEmailPlugin) Description() string {
	return "Automatically converts email addresses to me-AT-mail-DOT-com format. Also scrambles mailto: links."
}

func (ObfuscateEmailPlugin) Render(_ *domain.Entry, text string) (string, error) {
	return content.ObfuscateEmail(text), nil
}
