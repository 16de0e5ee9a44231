package roster

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/seating/pkg/seating/internalerr"
)

// Person is one attendee. Name identifies the person for display only;
// uniqueness is not enforced.
type Person struct {
	Name        string
	Description string
}

// ParseCSV reads a roster with "Name" and "Description" columns.
// Rows are split on commas without quote handling; surrounding quotes are
// stripped from each value. Rows missing a name or description are skipped.
func ParseCSV(r io.Reader) ([]Person, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: roster must have a header row and at least one data row", internalerr.ErrInvalidInput)
	}

	header := strings.ToLower(lines[0])
	if !strings.Contains(header, "name") || !strings.Contains(header, "description") {
		return nil, fmt.Errorf("%w: roster must have name and description columns", internalerr.ErrInvalidInput)
	}

	var people []Person
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		if len(values) < 2 {
			continue
		}
		name := cleanValue(values[0])
		desc := cleanValue(values[1])
		if name == "" || desc == "" {
			continue
		}
		people = append(people, Person{Name: name, Description: desc})
	}

	if len(people) == 0 {
		return nil, fmt.Errorf("%w: no valid people found in roster", internalerr.ErrInvalidInput)
	}
	return people, nil
}

// LoadFile parses a .csv roster from disk
func LoadFile(path string) ([]Person, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, fmt.Errorf("%w: %s is not a .csv file", internalerr.ErrInvalidInput, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseCSV(f)
}

// cleanValue trims whitespace (including a trailing \r) and one pair of
// surrounding double quotes.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, `"`)
	v = strings.TrimSuffix(v, `"`)
	return v
}
