// Package i18n serves localized UI strings from YAML bundles compiled into the
// binary. A Catalog is created once at startup and passed to whoever renders.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rollerweb/roller/internal/shared/locale"
	"github.com/rollerweb/roller/internal/shared/logger"
)

//go:embed bundles/*.yaml
var embedded embed.FS

const (
	bundleDir    = "bundles"
	bundlePrefix = "messages"
)

// Catalog resolves message keys per locale. Each locale's bundle chain is read
// on first use and kept for the life of the process.
type Catalog struct {
	fsys   fs.FS
	logger logger.Interface

	mu     sync.RWMutex
	loaded map[string]map[string]string
}

// NewCatalog returns a catalog over the built-in bundles.
func NewCatalog(log logger.Interface) *Catalog {
	return NewCatalogFS(embedded, log)
}

// NewCatalogFS reads bundles from fsys, which must contain a bundles/ directory.
func NewCatalogFS(fsys fs.FS, log logger.Interface) *Catalog {
	return &Catalog{
		fsys:   fsys,
		logger: log,
		loaded: make(map[string]map[string]string),
	}
}

// Lookup returns the message for key in tag, or key itself when no bundle in
// the chain defines it.
func (c *Catalog) Lookup(tag language.Tag, key string) string {
	if v, ok := c.bundle(tag)[key]; ok {
		return v
	}
	c.logger.Debugw("message key not found", "key", key, "locale", tag.String())
	return key
}

// Messages binds the catalog to one locale.
func (c *Catalog) Messages(tag language.Tag) Messages {
	return Messages{catalog: c, tag: tag, entries: c.bundle(tag)}
}

// Locales lists the locales that have a bundle of their own, sorted.
func (c *Catalog) Locales() []string {
	matches, err := fs.Glob(c.fsys, bundleDir+"/"+bundlePrefix+"_*.yaml")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(m, bundleDir+"/"+bundlePrefix+"_"), ".yaml")
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) bundle(tag language.Tag) map[string]string {
	key := locale.Format(tag)

	c.mu.RLock()
	b, ok := c.loaded[key]
	c.mu.RUnlock()
	if ok {
		return b
	}

	// Parse outside the lock; a concurrent loader of the same locale builds an
	// identical map and the first one stored wins.
	built := c.load(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.loaded[key]; ok {
		return existing
	}
	c.loaded[key] = built
	return built
}

// load merges root, then base language, then lang_REGION.
func (c *Catalog) load(key string) map[string]string {
	chain := []string{""}
	if base, _, found := strings.Cut(key, "_"); base != "" {
		chain = append(chain, base)
		if found {
			chain = append(chain, key)
		}
	}

	merged := make(map[string]string)
	for _, name := range chain {
		entries, err := c.readBundle(name)
		if err != nil {
			c.logger.Errorw("failed to read message bundle", "bundle", name, "error", err)
			continue
		}
		for k, v := range entries {
			merged[k] = v
		}
	}
	return merged
}

func (c *Catalog) readBundle(name string) (map[string]string, error) {
	file := bundleDir + "/" + bundlePrefix + ".yaml"
	if name != "" {
		file = bundleDir + "/" + bundlePrefix + "_" + name + ".yaml"
	}

	data, err := fs.ReadFile(c.fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return entries, nil
}

// Messages is a catalog view for a single locale.
type Messages struct {
	catalog *Catalog
	tag     language.Tag
	entries map[string]string
}

func (m Messages) Locale() language.Tag {
	return m.tag
}

// Get returns the message for key, or key itself when undefined.
func (m Messages) Get(key string) string {
	if v, ok := m.entries[key]; ok {
		return v
	}
	if m.catalog != nil {
		m.catalog.logger.Debugw("message key not found", "key", key, "locale", m.tag.String())
	}
	return key
}

// Format replaces {0}, {1}, ... in the message for key with args.
func (m Messages) Format(key string, args ...string) string {
	msg := m.Get(key)
	for i, a := range args {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{%d}", i), a)
	}
	return msg
}
