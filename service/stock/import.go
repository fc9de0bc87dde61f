package stock

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ImportResult holds the outcome of a bulk item import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// ImportItems reads a CSV of items (header: code,name,balance) and
// creates each through the engine, so initial-stock ledger entries are
// recorded exactly as they are for single creates. Bad rows are skipped
// with a warning; a malformed file aborts.
func ImportItems(ctx context.Context, engine *Engine, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	codeCol, ok := colIndex["code"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "code")
	}
	nameCol, ok := colIndex["name"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "name")
	}
	balanceCol, hasBalance := colIndex["balance"]

	result := &ImportResult{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		field := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		var balance int64
		if hasBalance {
			if v := field(balanceCol); v != "" {
				balance, err = strconv.ParseInt(v, 10, 64)
				if err != nil {
					result.Skipped++
					result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: invalid balance %q", line, v))
					continue
				}
			}
		}

		if _, err := engine.CreateItem(ctx, field(codeCol), field(nameCol), balance); err != nil {
			if errors.Is(err, ErrStorage) {
				return nil, err
			}
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}
