// Package locale is the side-loaded display-string table. Configuration
// records (games, pools, rules) hold identifiers only; anything shown to a
// user resolves here by (game, key), falling back to the shared section and
// finally to the key itself.
package locale

import (
	_ "embed"
	"fmt"
	"strings"

	"gacha-tracker/internal/config"
	"gacha-tracker/internal/domain"

	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

//go:embed strings.yaml
var stringsYAML []byte

const commonSection = "common"

// Table is a read-only lookup of localized strings for one language.
type Table struct {
	lang     string
	sections map[string]map[string]string
}

// New loads the embedded string table for the configured language, falling
// back to English when the language is unknown.
func New(cfg *config.Config) (*Table, error) {
	var all map[string]map[string]map[string]string
	if err := yaml.Unmarshal(stringsYAML, &all); err != nil {
		return nil, fmt.Errorf("failed to parse locale strings: %w", err)
	}

	lang := cfg.Locale
	sections, ok := all[lang]
	if !ok {
		lang = "en"
		sections = all[lang]
	}
	if sections == nil {
		return nil, fmt.Errorf("locale table has no entries for %q", lang)
	}
	return &Table{lang: lang, sections: sections}, nil
}

func (t *Table) Lang() string { return t.lang }

// Lookup resolves a key within a game's section, then the common section.
// Unknown keys resolve to themselves so a missing translation never hides
// data.
func (t *Table) Lookup(game domain.Game, key string) string {
	if section, ok := t.sections[string(game)]; ok {
		if v, ok := section[key]; ok {
			return v
		}
	}
	if v, ok := t.sections[commonSection][key]; ok {
		return v
	}
	return key
}

// Message resolves a key like Lookup and substitutes the current pity count
// when the template asks for it.
func (t *Table) Message(game domain.Game, key string, pity int) string {
	tmpl := t.Lookup(game, key)
	if strings.Contains(tmpl, "%d") {
		return fmt.Sprintf(tmpl, pity)
	}
	return tmpl
}

var Module = fx.Provide(New)
