// Package roster reads an optional author-tag-to-display-name mapping
// that decorates report rows. The similarity core never depends on its
// presence — identity is the filename-derived author tag.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Roster maps lowercase(AuthorTag) -> display name.
type Roster map[string]string

// Name looks up a display name by author tag, case-insensitively.
func (r Roster) Name(authorTag string) (string, bool) {
	name, ok := r[strings.ToLower(authorTag)]
	return name, ok
}

// Load reads a roster file, detecting CSV vs YAML by extension. CSV rows
// are `sigla,nome[,matricula]`; YAML is a flat mapping of tag to name.
func Load(path string) (Roster, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}

	roster := make(Roster, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			continue
		}
		sigla, nome := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if i == 0 && strings.EqualFold(sigla, "sigla") {
			continue // header row
		}
		if sigla == "" {
			continue
		}
		roster[strings.ToLower(sigla)] = nome
	}
	return roster, nil
}

func loadYAML(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	roster := make(Roster, len(raw))
	for k, v := range raw {
		roster[strings.ToLower(k)] = v
	}
	return roster, nil
}
