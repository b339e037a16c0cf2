// Package vocab provides a loader for the externalized heuristic vocabulary:
// keyword tables, stoplists, and regex pattern sets used by detection,
// extraction, and matching. Tables are stored as a JSON file and embedded at
// compile time so the heuristics can be tuned without touching control flow.
package vocab

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"
)

//go:embed vocab.json
var vocabFiles embed.FS

// Pattern is a named, compiled regular expression from the pattern sets.
// Name is the canonical term emitted when the pattern matches.
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// file mirrors the on-disk layout of vocab.json.
type file struct {
	Version  string                `json:"version"`
	Tables   map[string][]string   `json:"tables"`
	Patterns map[string][]patternDef `json:"patterns"`
}

type patternDef struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

var (
	loadOnce sync.Once
	loadErr  error
	loaded   *file

	compiledMu sync.RWMutex
	compiled   = make(map[string][]Pattern)
)

// load parses the embedded vocabulary file once.
func load() (*file, error) {
	loadOnce.Do(func() {
		data, err := vocabFiles.ReadFile("vocab.json")
		if err != nil {
			loadErr = fmt.Errorf("failed to read vocab file: %w", err)
			return
		}
		var f file
		if err := json.Unmarshal(data, &f); err != nil {
			loadErr = fmt.Errorf("failed to parse vocab file: %w", err)
			return
		}
		loaded = &f
	})
	return loaded, loadErr
}

// Version returns the vocabulary version string.
func Version() (string, error) {
	f, err := load()
	if err != nil {
		return "", err
	}
	return f.Version, nil
}

// Table retrieves a keyword table by name.
// Returns an error if the table is not present.
func Table(name string) ([]string, error) {
	f, err := load()
	if err != nil {
		return nil, err
	}
	table, exists := f.Tables[name]
	if !exists {
		return nil, fmt.Errorf("vocab table %q not found", name)
	}
	return table, nil
}

// MustTable retrieves a keyword table by name, panicking if not found.
// Use this for tables that are required at initialization time.
func MustTable(name string) []string {
	table, err := Table(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load vocab table: %v", err))
	}
	return table
}

// TableSet retrieves a keyword table as a membership set.
func TableSet(name string) (map[string]bool, error) {
	table, err := Table(name)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(table))
	for _, word := range table {
		set[word] = true
	}
	return set, nil
}

// MustTableSet retrieves a keyword table as a set, panicking if not found.
func MustTableSet(name string) map[string]bool {
	set, err := TableSet(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load vocab table: %v", err))
	}
	return set
}

// Patterns retrieves a compiled pattern set by name. Compilation results are
// cached after the first call.
func Patterns(name string) ([]Pattern, error) {
	compiledMu.RLock()
	if patterns, exists := compiled[name]; exists {
		compiledMu.RUnlock()
		return patterns, nil
	}
	compiledMu.RUnlock()

	f, err := load()
	if err != nil {
		return nil, err
	}
	defs, exists := f.Patterns[name]
	if !exists {
		return nil, fmt.Errorf("vocab pattern set %q not found", name)
	}

	patterns := make([]Pattern, 0, len(defs))
	for _, def := range defs {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q in set %s: %w", def.Pattern, name, err)
		}
		patterns = append(patterns, Pattern{Name: def.Name, Re: re})
	}

	compiledMu.Lock()
	compiled[name] = patterns
	compiledMu.Unlock()

	return patterns, nil
}

// MustPatterns retrieves a compiled pattern set, panicking if not found.
func MustPatterns(name string) []Pattern {
	patterns, err := Patterns(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load vocab patterns: %v", err))
	}
	return patterns
}

// ListTables returns the names of all available keyword tables.
func ListTables() ([]string, error) {
	f, err := load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.Tables))
	for name := range f.Tables {
		names = append(names, name)
	}
	return names, nil
}
