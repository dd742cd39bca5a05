// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package imports

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1250.50", 1250.5},
		{"৳1,250.50", 1250.5},
		{"BDT 300", 300},
		{" 42 ", 42},
		{"-75", -75},
		{"abc", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseAmount(tt.in); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseStatement_CSV(t *testing.T) {
	content := "\ufeffDate,Description,Category,Amount\n" +
		"2025-01-02,Rent,Housing,\"15,000\"\n" +
		"2025-01-03,Groceries,Food,৳1200.50\n" +
		"2025-01-05,Rickshaw,,80\n" +
		"2025-01-06,Snacks,Food,oops\n" +
		",,,\n"

	txs, totals, err := ParseStatement("statement.CSV", strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if len(txs) != 4 {
		t.Fatalf("expected 4 transactions, got %d", len(txs))
	}
	if txs[0].Date != "2025-01-02" || txs[0].Amount != 15000 {
		t.Errorf("unexpected first row: %+v", txs[0])
	}
	if txs[2].Category != "Uncategorized" {
		t.Errorf("expected default category, got %q", txs[2].Category)
	}
	if txs[3].Amount != 0 {
		t.Errorf("unparsable amount should be 0, got %v", txs[3].Amount)
	}

	if math.Abs(totals["Food"]-1200.5) > 1e-9 {
		t.Errorf("expected Food total 1200.5, got %v", totals["Food"])
	}
	if totals["Housing"] != 15000 || totals["Uncategorized"] != 80 {
		t.Errorf("unexpected totals: %v", totals)
	}
}

func TestParseStatement_CSVMissingColumns(t *testing.T) {
	content := "amount\n100\n"

	txs, _, err := ParseStatement("s.csv", strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Description != "Unknown" || txs[0].Category != "Uncategorized" {
		t.Errorf("expected defaults, got %+v", txs[0])
	}
}

func TestParseStatement_Empty(t *testing.T) {
	txs, totals, err := ParseStatement("empty.csv", strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 0 || len(totals) != 0 {
		t.Errorf("expected no rows, got %v %v", txs, totals)
	}
}

func TestParseStatement_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Amount", "Category", "Description", "Date"},
		{"500", "Transport", "Bus pass", "2025-02-01"},
		{"৳2,000", "Utilities", "Electricity", "2025-02-03"},
		{"250", "Transport", "CNG", "2025-02-04"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	txs, totals, err := ParseStatement("statement.xlsx", buf)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[1].Description != "Electricity" || txs[1].Amount != 2000 {
		t.Errorf("unexpected row: %+v", txs[1])
	}
	if totals["Transport"] != 750 {
		t.Errorf("expected Transport total 750, got %v", totals["Transport"])
	}
}

func TestParseStatement_Errors(t *testing.T) {
	if _, _, err := ParseStatement("statement.pdf", strings.NewReader("x")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, _, err := ParseStatement("statement.xlsx", strings.NewReader("not a zip")); err == nil {
		t.Error("expected error for corrupt spreadsheet")
	}
	if _, _, err := ParseStatement("s.csv", strings.NewReader("a,b\n\"unterminated")); err == nil {
		t.Error("expected error for malformed CSV")
	}
}

func TestValidateSize(t *testing.T) {
	if err := ValidateSize(5*1024*1024, 5); err != nil {
		t.Errorf("file at the limit should pass, got %v", err)
	}

	err := ValidateSize(6*1024*1024, 5)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if !strings.Contains(err.Error(), "5.0 MiB") {
		t.Errorf("expected human readable limit in %q", err.Error())
	}
}
