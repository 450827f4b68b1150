package messages

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = "en"

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// Catalog resolves message keys to user-facing text in one language.
//
// A Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	lang      string
	templates map[Key]string
}

// Languages lists the languages with a built-in catalog.
func Languages() []string {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Load returns the built-in catalog for lang. An empty lang selects
// DefaultLanguage.
func Load(lang string) (*Catalog, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	data, err := catalogFS.ReadFile("catalogs/" + lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no message catalog for language %q (available: %s)", lang, strings.Join(Languages(), ", "))
	}
	templates, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", lang, err)
	}
	for _, k := range Keys() {
		if _, ok := templates[k]; !ok {
			return nil, fmt.Errorf("catalog %s: missing key %q", lang, k)
		}
	}
	return &Catalog{lang: lang, templates: templates}, nil
}

// MustLoad is Load for built-in languages known to exist.
func MustLoad(lang string) *Catalog {
	c, err := Load(lang)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog for DefaultLanguage.
func Default() *Catalog {
	return MustLoad(DefaultLanguage)
}

// WithOverridesFile returns a copy of c where the templates found in the YAML
// file at path replace the built-in ones. Keys the catalog does not know are
// rejected so that typos do not silently fall back to the defaults.
func (c *Catalog) WithOverridesFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message overrides: %w", err)
	}
	overrides, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("message overrides %s: %w", path, err)
	}
	return c.WithOverrides(overrides)
}

// WithOverrides is WithOverridesFile for an in-memory set of templates.
func (c *Catalog) WithOverrides(overrides map[Key]string) (*Catalog, error) {
	merged := make(map[Key]string, len(c.templates))
	for k, v := range c.templates {
		merged[k] = v
	}
	for k, v := range overrides {
		if _, ok := c.templates[k]; !ok {
			return nil, fmt.Errorf("unknown message key %q", k)
		}
		merged[k] = v
	}
	return &Catalog{lang: c.lang, templates: merged}, nil
}

// Lang reports the catalog language.
func (c *Catalog) Lang() string { return c.lang }

// Text returns the raw template for key, or the key itself when the catalog
// does not define it.
func (c *Catalog) Text(key Key) string {
	if c != nil {
		if t, ok := c.templates[key]; ok {
			return t
		}
	}
	return string(key)
}

// Format renders the template for key, substituting {0}, {1}, ... with args.
// Placeholders without a matching argument are left as written.
func (c *Catalog) Format(key Key, args ...any) string {
	return Format(c.Text(key), args...)
}

// Format substitutes positional {N} placeholders in template.
func Format(template string, args ...any) string {
	if len(args) == 0 || !strings.Contains(template, "{") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '{' {
			b.WriteByte(ch)
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			b.WriteString(template[i:])
			break
		}
		n, err := strconv.Atoi(template[i+1 : i+end])
		if err != nil || n < 0 || n >= len(args) {
			b.WriteByte(ch)
			continue
		}
		fmt.Fprint(&b, args[n])
		i += end
	}
	return b.String()
}

func parse(data []byte) (map[Key]string, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[Key]string, len(raw))
	for k, v := range raw {
		out[Key(k)] = v
	}
	return out, nil
}
