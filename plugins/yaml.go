package plugins

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefinitionFile pairs a parsed rule definition with its on-disk source.
type DefinitionFile struct {
	Definition RuleDefinition
	Path       string
}

// ParseDefinitionYAML decodes and validates a single rule definition payload.
func ParseDefinitionYAML(data []byte) (RuleDefinition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return RuleDefinition{}, fmt.Errorf("plugin: definition payload is empty")
	}
	var def RuleDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return RuleDefinition{}, fmt.Errorf("plugin: decode definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return RuleDefinition{}, err
	}
	return def.Normalized(), nil
}

// LoadDefinitionFile reads a YAML file from disk and returns the parsed rule
// definition.
func LoadDefinitionFile(path string) (DefinitionFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DefinitionFile{}, fmt.Errorf("plugin: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return DefinitionFile{}, fmt.Errorf("plugin: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefinitionFile{}, fmt.Errorf("plugin: read %s: %w", path, err)
	}
	def, err := ParseDefinitionYAML(data)
	if err != nil {
		return DefinitionFile{}, fmt.Errorf("plugin: %s: %w", path, err)
	}
	return DefinitionFile{Definition: def, Path: filepath.Clean(path)}, nil
}

// LoadDefinitionDir scans a directory for *.yaml rules and returns the parsed
// definitions. Missing directories are treated as "no rules" to simplify
// startup.
func LoadDefinitionDir(dir string) ([]DefinitionFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("plugin: read %s: %w", trimmed, err)
	}
	var defs []DefinitionFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isYAMLFile(name) {
			continue
		}
		def, err := LoadDefinitionFile(filepath.Join(trimmed, name))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if len(defs) == 0 {
		return nil, nil
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Path < defs[j].Path })
	return defs, nil
}

// LoadRuleDir discovers YAML and Go rule definitions in one directory,
// rejecting duplicate rule ids across sources.
func LoadRuleDir(dir string) ([]DefinitionFile, error) {
	yamlDefs, err := LoadDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	goDefs, err := LoadGoDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	defs := append(yamlDefs, goDefs...)
	seen := make(map[string]string, len(defs))
	for _, file := range defs {
		if existing, ok := seen[file.Definition.RuleID]; ok {
			return nil, fmt.Errorf("plugin: duplicate rule id %s (%s and %s)", file.Definition.RuleID, existing, file.Path)
		}
		seen[file.Definition.RuleID] = file.Path
	}
	return defs, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
