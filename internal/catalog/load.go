package catalog

import (
	"fmt"
	"os"

	"github.com/conversational-intent-router/internal/jsonx"
)

// LoadJSONFile reads a structured catalog from a JSON file. The file holds an
// array of intent definitions in the same shape as BuiltinJSON.
func LoadJSONFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var cat Catalog
	if err := jsonx.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return cat, nil
}

// LoadTOONFile reads a compact catalog from a TOON text file. Malformed rows
// are skipped and reported as warnings, matching ParseTOON.
func LoadTOONFile(path string) (Catalog, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog file: %w", err)
	}
	cat, warnings := ParseTOON(string(data))
	return cat, warnings, nil
}
