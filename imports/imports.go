// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package imports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported statement format")
	ErrTooLarge          = errors.New("statement file too large")
)

const (
	defaultDescription = "Unknown"
	defaultCategory    = "Uncategorized"
)

// Transaction is one parsed statement row.
type Transaction struct {
	Date        string
	Description string
	Category    string
	Amount      float64
}

// ValidateSize rejects files larger than maxMB megabytes.
func ValidateSize(size int64, maxMB int) error {
	limit := int64(maxMB) * 1024 * 1024
	if size > limit {
		return fmt.Errorf("%w: %s exceeds the %s limit", ErrTooLarge,
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit)))
	}
	return nil
}

// ParseStatement reads a .csv or .xlsx bank statement. The first row names
// the columns (date, description, category, amount; any order, any case).
// Returns the rows and the summed amount per category.
func ParseStatement(filename string, r io.Reader) ([]Transaction, map[string]float64, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, nil, err
	}

	txs := parseRows(rows)
	return txs, categoryTotals(txs), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	return rows, nil
}

func parseRows(rows [][]string) []Transaction {
	if len(rows) == 0 {
		return nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name, fallback string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return fallback
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
		return fallback
	}

	txs := make([]Transaction, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		txs = append(txs, Transaction{
			Date:        field(row, "date", ""),
			Description: field(row, "description", defaultDescription),
			Category:    field(row, "category", defaultCategory),
			Amount:      ParseAmount(field(row, "amount", "0")),
		})
	}
	return txs
}

// ParseAmount reads a statement amount such as "৳1,250.50" or "BDT 300".
// Unparsable values are 0.
func ParseAmount(s string) float64 {
	clean := strings.NewReplacer("৳", "", "BDT", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

func categoryTotals(txs []Transaction) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		sums[tx.Category] = sums[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
	}

	totals := make(map[string]float64, len(sums))
	for category, sum := range sums {
		totals[category] = sum.InexactFloat64()
	}
	return totals
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
