package sheets

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/hidalgodigital/pedbot/pkg/municipio"
)

// BlankLabel buckets rows whose municipality cell is empty, so that
// summing a snapshot's values always reproduces the row count.
const BlankLabel = "(Sin municipio)"

// Snapshot maps raw municipality labels, exactly as they appeared in
// the source column, to occurrence counts. It is replaced wholesale on
// every successful refresh and must be treated as read-only.
type Snapshot map[string]int

// ResolveColumn locates the unit-name column in a header row. It tries
// a case-insensitive exact match first, then a case-insensitive
// substring match, which tolerates upstream renames like "Municipio "
// or "Nombre del Municipio". Returns false when neither stage matches.
func ResolveColumn(header []string, name string) (int, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i, true
		}
	}
	for i, h := range header {
		if strings.Contains(strings.ToLower(strings.TrimSpace(h)), want) {
			return i, true
		}
	}
	return 0, false
}

// ParseCounts aggregates the CSV export into a Snapshot keyed by the
// raw trimmed values of the named column. Malformed rows are skipped
// individually; a missing column or a parse yielding zero rows is an
// error so the cache can keep its previous snapshot.
func ParseCounts(data []byte, column string) (Snapshot, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, ok := ResolveColumn(header, column)
	if !ok {
		return nil, fmt.Errorf("column %q not found in header %v", column, header)
	}

	counts := make(Snapshot)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if idx >= len(record) {
			continue
		}
		label := strings.TrimSpace(record[idx])
		if label == "" {
			label = BlankLabel
		}
		counts[label]++
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return counts, nil
}

// CountFor returns the count for a canonical unit name. Snapshot keys
// are raw labels, so both sides are normalized at query time; a unit
// absent from the current period's data legitimately counts as 0.
func CountFor(s Snapshot, name string) int {
	key := municipio.Normalize(name)
	for label, n := range s {
		if municipio.Normalize(label) == key {
			return n
		}
	}
	return 0
}

// Total sums all counts in the snapshot, blanks included.
func Total(s Snapshot) int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}
