package recommend

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	LevelBeginner     = 1
	LevelIntermediate = 2
	LevelAdvanced     = 3
)

// LevelTable maps lower-cased level synonyms (English and Indonesian) to an ordinal.
type LevelTable map[string]int

func DefaultLevels() LevelTable {
	return LevelTable{
		"beginner": LevelBeginner, "dasar": LevelBeginner, "pemula": LevelBeginner,
		"intermediate": LevelIntermediate, "menengah": LevelIntermediate,
		"advanced": LevelAdvanced, "mahir": LevelAdvanced, "expert": LevelAdvanced, "profesional": LevelAdvanced,
	}
}

func normalizeLevel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Lookup reports the ordinal for s and whether s is a known synonym.
func (t LevelTable) Lookup(s string) (int, bool) {
	n, ok := t[normalizeLevel(s)]
	return n, ok
}

// Ordinal resolves s, falling back to beginner for anything unrecognized.
func (t LevelTable) Ordinal(s string) int {
	if n, ok := t.Lookup(s); ok {
		return n
	}
	return LevelBeginner
}

type levelFile struct {
	Levels map[int][]string `yaml:"levels"`
}

// LoadLevelTable reads extra synonyms from a YAML file of the form
//
//	levels:
//	  1: [beginner, pemula]
//	  3: [lanjutan]
//
// and merges them over the defaults. An empty path returns the defaults.
func LoadLevelTable(path string) (LevelTable, error) {
	t := DefaultLevels()
	if path == "" {
		return t, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	var f levelFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return t, fmt.Errorf("parse level vocabulary %s: %w", path, err)
	}
	for ord, names := range f.Levels {
		if ord < LevelBeginner || ord > LevelAdvanced {
			return t, fmt.Errorf("level vocabulary %s: ordinal %d out of range 1-3", path, ord)
		}
		for _, n := range names {
			if n = normalizeLevel(n); n != "" {
				t[n] = ord
			}
		}
	}
	return t, nil
}
