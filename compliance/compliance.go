// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package compliance

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/peak-finance/models"
)

const (
	CalcDisclaimer = "Educational estimates only; not financial advice. " +
		"Actual results may vary based on individual circumstances."

	LoanDisclaimer = "Loan estimates are illustrative; approval and terms are set solely by licensed lenders. " +
		"This is not a loan offer or commitment."

	ProjectionDisclaimer = "Projections are estimates and may differ from real prices. " +
		"Market conditions and inflation rates vary."
)

// RegulatoryReferences are the Bangladesh guidelines any regulated feature
// must follow.
var RegulatoryReferences = []string{
	"https://bfiu.org.bd/pdf/regulationguideline/aml/jan082020_ekyc.pdf",
	"https://www.bb.org.bd/mediaroom/circulars/aml/jan082020bfiu25.pdf",
	"https://www.fatf-gafi.org/en/countries/detail/Bangladesh.html",
}

var ErrRegulatedFeature = errors.New("feature requires a licensed financial services partner")

func CalcMeta() models.Meta {
	return models.Meta{Disclaimer: CalcDisclaimer}
}

func LoanMeta() models.Meta {
	return models.Meta{Disclaimer: CalcDisclaimer + " " + LoanDisclaimer}
}

func ProjectionMeta() models.Meta {
	return models.Meta{Disclaimer: CalcDisclaimer + " " + ProjectionDisclaimer}
}

// CheckRegulatedFeature gates features such as e-KYC or credit bureau
// lookups, which are only available when running through a licensed
// partner.
func CheckRegulatedFeature(regulated bool, feature string) error {
	if regulated {
		return nil
	}
	return fmt.Errorf("%w: %s is not available in educational mode", ErrRegulatedFeature, feature)
}
