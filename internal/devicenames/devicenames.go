// Package devicenames maps raw handset model codes reported by the mobile
// app (e.g. "samsung SM-S928N") to marketing names for dashboard display.
package devicenames

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed models.json
var modelsJSON []byte

// Unknown is the literal model code the app reports when it could not read
// the handset model. It stays in histograms but is dropped from ranked views.
const Unknown = "unknown"

// Table resolves model codes to friendly names.
type Table struct {
	names map[string]string
}

// Load parses the embedded model-code asset.
func Load() (*Table, error) {
	names := map[string]string{}
	if err := json.Unmarshal(modelsJSON, &names); err != nil {
		return nil, fmt.Errorf("parse model table: %w", err)
	}
	return &Table{names: names}, nil
}

// Len reports the number of known model codes.
func (t *Table) Len() int { return len(t.names) }

// Resolve turns a raw "brand CODE" string into a friendly name. The brand
// prefix ends at the first space; a bare code has no brand. Codes missing
// from the table pass through as "brand CODE".
func (t *Table) Resolve(raw string) string {
	brand, code := splitBrand(raw)
	if name, ok := t.names[code]; ok {
		return name
	}
	return strings.TrimSpace(brand + " " + code)
}

func splitBrand(raw string) (brand, code string) {
	if i := strings.Index(raw, " "); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return "", raw
}
