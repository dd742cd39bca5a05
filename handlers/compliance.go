// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/peak-finance/cliparse"
	"github.com/danielhkuo/peak-finance/compliance"
	"github.com/danielhkuo/peak-finance/middleware"
	"github.com/danielhkuo/peak-finance/models"
)

type ComplianceHandler struct {
	cfg cliparse.Config
}

func NewComplianceHandler(cfg cliparse.Config) *ComplianceHandler {
	return &ComplianceHandler{cfg: cfg}
}

// Compliance handles GET /compliance
func (h *ComplianceHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ComplianceResponse{
		CalcDisclaimer:       compliance.CalcDisclaimer,
		LoanDisclaimer:       compliance.LoanDisclaimer,
		ProjectionDisclaimer: compliance.ProjectionDisclaimer,
		RegulatedPartner:     h.cfg.RegulatedPartner,
		References:           compliance.RegulatoryReferences,
	})
}

// FeatureStatus handles GET /compliance/features/{feature}
// Regulated features (e-KYC, credit bureau checks, loan offers) answer 403
// unless the server runs through a licensed partner.
func (h *ComplianceHandler) FeatureStatus(w http.ResponseWriter, r *http.Request) {
	feature := r.PathValue("feature")
	if feature == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "feature is required")
		return
	}

	if err := compliance.CheckRegulatedFeature(h.cfg.RegulatedPartner, feature); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FeatureStatus{Feature: feature, Available: true})
}
