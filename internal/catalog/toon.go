package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// toonHeaderKeyword marks the header line of a TOON catalog.
const toonHeaderKeyword = "intents"

// toonFieldCount is the number of comma-delimited fields per row:
// id, label, keywords, description, starter_phrases, semantic_vector, triggers.
const toonFieldCount = 7

// ParseTOON parses the compact TOON catalog text into ordered intent
// definitions. It is a pure function: malformed rows are skipped, never
// fatal, and reported through the returned warning list so catalog authors
// can fix data-quality issues.
func ParseTOON(text string) (Catalog, []string) {
	var (
		cat      Catalog
		warnings []string
	)

	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, toonHeaderKeyword) {
			continue
		}

		parts := splitTOONRow(line)
		if len(parts) < toonFieldCount {
			warnings = append(warnings, fmt.Sprintf("row skipped: expected %d fields, got %d: %q", toonFieldCount, len(parts), truncate(line, 60)))
			continue
		}

		vector, err := parseVector(parts[5])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %q: %v, using zero vector", parts[0], err))
			vector = make([]float64, DefaultVectorDim)
		}

		cat = append(cat, IntentDefinition{
			ID:             parts[0],
			Label:          parts[1],
			Keywords:       splitList(parts[2]),
			Description:    strings.Trim(parts[3], `"`),
			StarterPhrases: splitList(parts[4]),
			SemanticVector: vector,
			Triggers:       parseTriggers(parts[6]),
		})
	}

	return cat, warnings
}

// splitTOONRow splits a row on commas that are not enclosed in double quotes
// or square brackets.
func splitTOONRow(line string) []string {
	var (
		parts      []string
		current    strings.Builder
		inQuotes   bool
		inBrackets bool
	)

	runes := []rune(line)
	for i, ch := range runes {
		switch {
		case ch == '"' && (i == 0 || runes[i-1] != '\\'):
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == '[' && !inQuotes:
			inBrackets = true
			current.WriteRune(ch)
		case ch == ']' && !inQuotes:
			inBrackets = false
			current.WriteRune(ch)
		case ch == ',' && !inQuotes && !inBrackets:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

// splitList parses a quoted comma-separated list field.
func splitList(field string) []string {
	var items []string
	for _, item := range strings.Split(strings.Trim(field, `"`), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseVector parses a bracketed comma-separated float list.
func parseVector(field string) ([]float64, error) {
	field = strings.Trim(strings.TrimSpace(field), "[]")
	if field == "" {
		return nil, fmt.Errorf("empty semantic vector")
	}
	elems := strings.Split(field, ",")
	vec := make([]float64, 0, len(elems))
	for _, elem := range elems {
		f, err := strconv.ParseFloat(strings.TrimSpace(elem), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid semantic vector element %q", strings.TrimSpace(elem))
		}
		vec = append(vec, f)
	}
	return vec, nil
}

// parseTriggers parses the quoted trigger list, unescaping doubled
// backslashes so `\\b` and `\\s` become the regex metacharacters `\b`, `\s`.
func parseTriggers(field string) []string {
	triggers := splitList(field)
	for i, t := range triggers {
		t = strings.ReplaceAll(t, `\\b`, `\b`)
		t = strings.ReplaceAll(t, `\\s`, `\s`)
		triggers[i] = t
	}
	return triggers
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
