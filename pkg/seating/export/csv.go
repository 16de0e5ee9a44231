// Package export renders table assignments for external consumption.
package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/cognicore/seating/pkg/seating/assign"
)

// Header is the first line of every CSV export
const Header = "Table,Name,Description"

// CSV renders tables as newline-joined rows: the header, then one
// "id,name,\"description\"" row per member in table then seat order.
// Only the description is quoted; a comma in a name is written as-is.
func CSV(tables []assign.Table) string {
	rows := make([]string, 0, 1+countMembers(tables))
	rows = append(rows, Header)
	for _, table := range tables {
		id := strconv.Itoa(table.ID)
		for _, person := range table.Members {
			rows = append(rows, id+","+person.Name+","+quote(person.Description))
		}
	}
	return strings.Join(rows, "\n")
}

// WriteCSV writes the CSV rendering to w
func WriteCSV(w io.Writer, tables []assign.Table) error {
	_, err := io.WriteString(w, CSV(tables))
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func countMembers(tables []assign.Table) int {
	n := 0
	for _, t := range tables {
		n += len(t.Members)
	}
	return n
}
