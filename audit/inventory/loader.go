// Package inventory loads the client tool inventory from CSV. Column
// matching is forgiving about header naming; anything beyond "each row needs
// a tool name" is left to the caller.
package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

var (
	nameHeaders = []string{"tool name", "name", "tool"}
	typeHeaders = []string{"tool type", "type", "category"}
)

func LoadCSV(path string) ([]contractx.Tool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory csv: %w", err)
	}
	defer f.Close()

	return Read(f)
}

func Read(r io.Reader) ([]contractx.Tool, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read inventory header: %w", err)
	}

	nameCol := findColumn(header, nameHeaders)
	typeCol := findColumn(header, typeHeaders)
	if nameCol < 0 {
		return nil, fmt.Errorf("inventory csv has no tool name column (header: %s)", strings.Join(header, ", "))
	}

	var tools []contractx.Tool
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read inventory row: %w", err)
		}

		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		tools = append(tools, contractx.Tool{
			Name: name,
			Type: cell(row, typeCol),
		})
	}
	return tools, nil
}

func findColumn(header []string, candidates []string) int {
	for _, want := range candidates {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
