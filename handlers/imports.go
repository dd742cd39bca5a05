// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/peak-finance/audit"
	"github.com/danielhkuo/peak-finance/auth"
	"github.com/danielhkuo/peak-finance/finance"
	"github.com/danielhkuo/peak-finance/imports"
	"github.com/danielhkuo/peak-finance/middleware"
	"github.com/danielhkuo/peak-finance/models"
)

// multipartOverhead covers boundaries and part headers around the file
const multipartOverhead = 64 << 10

// ImportStatement handles POST /data/import
// Expects a multipart form with a .csv or .xlsx "file" field. Every row is
// stored as an imported expense in one transaction.
func (h *DataHandler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	limit := int64(h.cfg.MaxImportMB)<<20 + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if err := imports.ValidateSize(header.Size, h.cfg.MaxImportMB); err != nil {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	txs, totals, err := imports.ParseStatement(header.Filename, file)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, imports.ErrUnsupportedFormat) {
			status = http.StatusUnsupportedMediaType
		}
		middleware.ErrorResponse(w, status, err.Error())
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin import transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import statement")
		return
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, t := range txs {
		spentOn := t.Date
		if validateDate("date", spentOn) != nil {
			spentOn = ""
		}

		err := insertExpense(tx, models.Expense{
			ID:          auth.GenerateID(),
			UserID:      user.ID,
			Amount:      t.Amount,
			Category:    t.Category,
			Description: t.Description,
			SpentOn:     spentOn,
			Source:      models.SourceImport,
			CreatedAt:   now,
		})
		if err != nil {
			slog.Error("failed to insert imported expense", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import statement")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit import", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import statement")
		return
	}

	slog.Info("statement imported", "user_id", user.ID, "rows", len(txs))
	recordAudit(r, h.db, h.cfg, audit.Entry{
		UserID:  user.ID,
		Action:  audit.ActionStatementImport,
		Payload: map[string]any{"filename": header.Filename, "rows": len(txs)},
	})

	rounded := make(map[string]float64, len(totals))
	for category, total := range totals {
		rounded[category] = finance.RoundCurrency(total)
	}

	middleware.JSONResponse(w, http.StatusCreated, models.ImportResponse{
		Imported:       len(txs),
		CategoryTotals: rounded,
	})
}
