package keywords

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// rulesFile is the on-disk shape of the classification tables.
type rulesFile struct {
	HardSkillPatterns []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"hard_skill_patterns"`
	SkillPhrases      []string            `yaml:"skill_phrases"`
	SoftSkillTriggers map[string][]string `yaml:"soft_skill_triggers"`
}

// hardSkillPattern is one compiled classification rule.
type hardSkillPattern struct {
	name string
	re   *regexp.Regexp
}

// Rules holds the compiled classification tables: an ordered regex list for
// hard skills, a literal multi-word phrase list, and the trigger-substring to
// soft-skill-concept map.
type Rules struct {
	patterns []hardSkillPattern
	phrases  []string
	triggers map[string][]string
}

// DefaultRules compiles the embedded tables.
func DefaultRules() (*Rules, error) {
	return parseRules(defaultRulesYAML)
}

// LoadRules compiles tables from an external YAML file, letting users extend
// the vocabulary without recompiling.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %q: %w", path, err)
	}
	rules, err := parseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %q: %w", path, err)
	}
	return rules, nil
}

func parseRules(data []byte) (*Rules, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rules yaml: %w", err)
	}

	rules := &Rules{
		phrases:  file.SkillPhrases,
		triggers: file.SoftSkillTriggers,
	}

	for _, entry := range file.HardSkillPatterns {
		re, err := regexp.Compile(entry.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", entry.Name, err)
		}
		rules.patterns = append(rules.patterns, hardSkillPattern{name: entry.Name, re: re})
	}

	return rules, nil
}

// PatternCount returns the number of compiled hard-skill patterns.
func (r *Rules) PatternCount() int { return len(r.patterns) }
