package analytics

import (
	_ "embed"
	"fmt"

	"gacha-tracker/internal/domain"

	"gopkg.in/yaml.v3"
)

// PityRule holds the per (game, pool type) pull-mechanic constants. Rates
// are percentages. Rules are immutable for the lifetime of the process and
// safe for unsynchronized concurrent reads.
type PityRule struct {
	HardPity         int     `yaml:"hard_pity" json:"hardPity"`
	SoftPityStart    int     `yaml:"soft_pity_start" json:"softPityStart"`
	FourStarPity     int     `yaml:"four_star_pity" json:"fourStarPity"`
	BaseFiveStarRate float64 `yaml:"base_five_star_rate" json:"baseFiveStarRate"`
	BaseFourStarRate float64 `yaml:"base_four_star_rate" json:"baseFourStarRate"`
}

// DefaultRule applies when neither a (game, pool) nor a game-level entry is
// registered.
var DefaultRule = PityRule{
	HardPity:         90,
	SoftPityStart:    75,
	FourStarPity:     10,
	BaseFiveStarRate: 0.6,
	BaseFourStarRate: 5.1,
}

//go:embed rules.yaml
var rulesYAML []byte

type ruleKey struct {
	game domain.Game
	pool string
}

type ruleEntry struct {
	Game      string   `yaml:"game"`
	PoolTypes []string `yaml:"pool_types"`
	Rule      PityRule `yaml:"rule"`
}

type ruleFile struct {
	Default PityRule    `yaml:"default"`
	Rules   []ruleEntry `yaml:"rules"`
}

// RuleTable resolves pity rules by (game, pool type) with game-level and
// global fallbacks. Loaded once from the embedded table.
type RuleTable struct {
	def   PityRule
	rules map[ruleKey]PityRule
}

// NewRuleTable parses the embedded rule table.
func NewRuleTable() (*RuleTable, error) {
	var f ruleFile
	if err := yaml.Unmarshal(rulesYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse pity rules: %w", err)
	}

	t := &RuleTable{def: f.Default, rules: make(map[ruleKey]PityRule)}
	if t.def.HardPity == 0 {
		t.def = DefaultRule
	}
	for _, e := range f.Rules {
		game := domain.Game(e.Game)
		if len(e.PoolTypes) == 0 {
			t.rules[ruleKey{game: game}] = e.Rule
			continue
		}
		for _, pool := range e.PoolTypes {
			t.rules[ruleKey{game: game, pool: pool}] = e.Rule
		}
	}
	return t, nil
}

// RuleFor resolves the rule for a pool. Pool type may be empty, meaning the
// game-wide rule. Resolution order: exact (game, pool) entry, game-level
// entry, global default.
func (t *RuleTable) RuleFor(game domain.Game, poolType string) PityRule {
	if poolType != "" {
		if r, ok := t.rules[ruleKey{game: game, pool: poolType}]; ok {
			return r
		}
	}
	if r, ok := t.rules[ruleKey{game: game}]; ok {
		return r
	}
	return t.def
}
