package analytics

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/model"
)

// assumedGstRate is applied when a row carries no explicit tax amount.
// A flat 18% is a placeholder for the common slab, not a tax determination;
// summaries built on it must say so.
var assumedGstRate = decimal.NewFromFloat(0.18)

// GstSummary splits GST rows into outward (sales) and inward (purchase)
// supplies. RateAssumed is true when any tax figure was derived from the
// flat rate rather than read from the engine.
type GstSummary struct {
	TaxableSales     decimal.Decimal
	OutputTax        decimal.Decimal
	TaxablePurchases decimal.Decimal
	InputTax         decimal.Decimal
	NetLiability     decimal.Decimal
	RateAssumed      bool
}

// SummarizeGst accumulates entries by voucher-type keyword: "sales" rows
// are outward supplies, "purchase" rows inward. Rows with other voucher
// types are ignored. Only positive taxable values contribute.
func SummarizeGst(entries []model.GstEntry) GstSummary {
	s := GstSummary{
		TaxableSales:     decimal.Zero,
		OutputTax:        decimal.Zero,
		TaxablePurchases: decimal.Zero,
		InputTax:         decimal.Zero,
	}

	for _, e := range entries {
		if !e.TaxableValue.IsPositive() {
			continue
		}
		vtype := strings.ToLower(e.VoucherType)
		outward := strings.Contains(vtype, "sales")
		inward := strings.Contains(vtype, "purchase")
		if !outward && !inward {
			continue
		}

		tax := decimal.Zero
		if e.TaxAmount != nil {
			tax = *e.TaxAmount
		} else {
			tax = e.TaxableValue.Mul(assumedGstRate)
			s.RateAssumed = true
		}

		if outward {
			s.TaxableSales = s.TaxableSales.Add(e.TaxableValue)
			s.OutputTax = s.OutputTax.Add(tax)
		} else {
			s.TaxablePurchases = s.TaxablePurchases.Add(e.TaxableValue)
			s.InputTax = s.InputTax.Add(tax)
		}
	}

	s.NetLiability = s.OutputTax.Sub(s.InputTax)
	return s
}
