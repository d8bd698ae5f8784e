package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field declares one logical column of an import: its name and the ordered
// header aliases that may carry it. Spreadsheets arrive with Portuguese or
// English headers, inconsistent casing and accents, so matching happens on a
// normalized form.
type Field struct {
	Name     string
	Aliases  []string
	Required bool
}

// Mapping is the result of resolving a header row against a field list once
// per import. Unrecognized columns are reported, not silently dropped.
type Mapping struct {
	// Columns maps logical field name to the actual header found in the file.
	Columns map[string]string
	// Unmapped lists file headers no field claimed.
	Unmapped []string
	// Missing lists required fields with no matching header.
	Missing []string
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader lowercases, trims and strips diacritics so that
// "Nome Artístico", "nome artistico" and "NOME ARTISTICO " all match.
func NormalizeHeader(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// ResolveColumns evaluates the declarative field list against the file's
// headers. First alias wins per field; each header maps to at most one field.
func ResolveColumns(headers []string, fields []Field) Mapping {
	normalized := make(map[string]string, len(headers)) // normalized -> original
	claimed := make(map[string]bool, len(headers))
	for _, h := range headers {
		key := NormalizeHeader(h)
		if _, exists := normalized[key]; !exists {
			normalized[key] = h
		}
	}

	m := Mapping{Columns: make(map[string]string)}
	for _, f := range fields {
		found := false
		for _, alias := range f.Aliases {
			if original, ok := normalized[NormalizeHeader(alias)]; ok && !claimed[original] {
				m.Columns[f.Name] = original
				claimed[original] = true
				found = true
				break
			}
		}
		if !found && f.Required {
			m.Missing = append(m.Missing, f.Name)
		}
	}

	for _, h := range headers {
		if !claimed[h] {
			m.Unmapped = append(m.Unmapped, h)
		}
	}
	return m
}
