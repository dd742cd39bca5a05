// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/peak-finance/audit"
	"github.com/danielhkuo/peak-finance/models"
	"github.com/danielhkuo/peak-finance/testutil"
)

// uploadRequest builds a multipart POST /data/import request. An empty
// filename sends the form without a file part.
func uploadRequest(t *testing.T, token, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(content)
	} else {
		mw.WriteField("note", "no file")
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/data/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestImportStatement_CSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	user, token := testutil.CreateTestUser(t, db, cfg, "import@example.com", 50000)
	handler := NewDataHandler(db, cfg)

	csv := strings.Join([]string{
		"Date,Description,Category,Amount",
		"2025-01-03,Shwapno,Groceries,\"৳1,250.50\"",
		"2025-01-05,Pathao,Transport,BDT 300",
		"03/01/2025,Agora,Groceries,749.50",
		",,,",
		"2025-01-09,,,100",
	}, "\n")

	w := serveAuthed(db, cfg, handler.ImportStatement, uploadRequest(t, token, "january.csv", []byte(csv)))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.ImportResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Imported != 4 {
		t.Errorf("Expected 4 imported rows, got %d", resp.Imported)
	}
	expectedTotals := map[string]float64{"Groceries": 2000, "Transport": 300, "Uncategorized": 100}
	for category, want := range expectedTotals {
		if got := resp.CategoryTotals[category]; got != want {
			t.Errorf("Category %s: expected %v, got %v", category, want, got)
		}
	}

	var count int
	db.QueryRow(`SELECT COUNT(*) FROM expense WHERE user_id = $1 AND source = $2`, user.ID, models.SourceImport).Scan(&count)
	if count != 4 {
		t.Errorf("Expected 4 imported expenses in the database, got %d", count)
	}

	// Dates that are not YYYY-MM-DD are dropped, the row is kept
	var spentOn string
	db.QueryRow(`SELECT COALESCE(spent_on, '') FROM expense WHERE description = 'Agora'`).Scan(&spentOn)
	if spentOn != "" {
		t.Errorf("Expected invalid date to be dropped, got %q", spentOn)
	}

	var audits int
	db.QueryRow(`SELECT COUNT(*) FROM audit_log WHERE action = $1 AND user_id = $2`, audit.ActionStatementImport, user.ID).Scan(&audits)
	if audits != 1 {
		t.Errorf("Expected 1 import audit entry, got %d", audits)
	}
}

func TestImportStatement_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	user, token := testutil.CreateTestUser(t, db, cfg, "import@example.com", 50000)
	handler := NewDataHandler(db, cfg)

	oversize := bytes.Repeat([]byte("x"), cfg.MaxImportMB<<20+1024)

	testCases := []struct {
		name         string
		filename     string
		content      []byte
		expectedCode int
	}{
		{"missing file", "", nil, http.StatusBadRequest},
		{"unsupported format", "statement.pdf", []byte("%PDF-1.4"), http.StatusUnsupportedMediaType},
		{"too large", "big.csv", oversize, http.StatusRequestEntityTooLarge},
		{"broken csv", "broken.csv", []byte("amount\n\"unterminated"), http.StatusBadRequest},
		{"broken xlsx", "broken.xlsx", []byte("not a zip"), http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serveAuthed(db, cfg, handler.ImportStatement, uploadRequest(t, token, tc.filename, tc.content))
			testutil.AssertStatus(t, w, tc.expectedCode)
		})
	}

	var count int
	db.QueryRow(`SELECT COUNT(*) FROM expense WHERE user_id = $1`, user.ID).Scan(&count)
	if count != 0 {
		t.Errorf("Failed imports must not store expenses, got %d", count)
	}
}
