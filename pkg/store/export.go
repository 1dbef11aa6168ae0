package store

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"mprcore/pkg/measurement"
)

// exportVersion identifies the JSON export layout.
const exportVersion = "1.0"

// exportDocument is the persisted JSON layout.
type exportDocument struct {
	Version      string                    `json:"version"`
	Timestamp    time.Time                 `json:"timestamp"`
	Measurements []measurement.Measurement `json:"measurements"`
}

// ExportJSON serializes all measurements as an indented JSON document
// with a version tag and export timestamp.
func (s *Store) ExportJSON() ([]byte, error) {
	doc := exportDocument{
		Version:      exportVersion,
		Timestamp:    s.now().UTC(),
		Measurements: s.List(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode measurements: %w", err)
	}
	return data, nil
}

// ImportJSON replaces the store contents with a previously exported
// document, preserving record IDs. The ID counter advances past the
// largest imported ID so new measurements stay unique.
func (s *Store) ImportJSON(data []byte) error {
	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode measurements: %w", err)
	}
	if doc.Version != exportVersion {
		return fmt.Errorf("unsupported export version %q", doc.Version)
	}

	s.measurements = doc.Measurements
	for _, m := range doc.Measurements {
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}
	return nil
}

// ExportCSV renders the measurements as CSV with the header
// ID,Type,Value,Unit,Timestamp. Numeric values are formatted with two
// decimals and string fields are double-quoted.
func (s *Store) ExportCSV() string {
	var b strings.Builder
	b.WriteString("ID,Type,Value,Unit,Timestamp\n")

	for _, m := range s.measurements {
		fmt.Fprintf(&b, "%d,%s,%.2f,%s,%s\n",
			m.ID,
			quoteCSV(string(m.Type)),
			m.Value,
			quoteCSV(m.Unit),
			quoteCSV(m.CreatedAt.Format(time.RFC3339)))
	}

	return b.String()
}

// quoteCSV double-quotes a field, doubling any embedded quotes.
func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// htmlRow is one rendered table row.
type htmlRow struct {
	ID        int64
	Type      string
	Value     string
	Unit      string
	Timestamp string
	Accuracy  string
}

var htmlTableTemplate = template.Must(template.New("measurements").Parse(
	`<table>
  <tr><th>ID</th><th>Type</th><th>Value</th><th>Unit</th><th>Timestamp</th><th>Accuracy</th></tr>
{{- range .}}
  <tr><td>{{.ID}}</td><td>{{.Type}}</td><td>{{.Value}}</td><td>{{.Unit}}</td><td>{{.Timestamp}}</td><td>{{.Accuracy}}</td></tr>
{{- end}}
</table>
`))

// ExportHTML renders the measurements as a single HTML table with the
// columns ID, Type, Value, Unit, Timestamp and Accuracy. Missing
// accuracy notes render as "-".
func (s *Store) ExportHTML() string {
	rows := make([]htmlRow, 0, len(s.measurements))
	for _, m := range s.measurements {
		accuracy := m.Accuracy
		if accuracy == "" {
			accuracy = "-"
		}
		rows = append(rows, htmlRow{
			ID:        m.ID,
			Type:      string(m.Type),
			Value:     fmt.Sprintf("%.2f", m.Value),
			Unit:      m.Unit,
			Timestamp: m.CreatedAt.Format(time.RFC3339),
			Accuracy:  accuracy,
		})
	}

	var b strings.Builder
	if err := htmlTableTemplate.Execute(&b, rows); err != nil {
		// The template is static and the row type matches it; execution
		// cannot fail on well-formed rows.
		return "<table></table>\n"
	}
	return b.String()
}
