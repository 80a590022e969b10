package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is one account in the chart of accounts as reported by the engine.
// Sign convention: a positive balance is debit-nature, a negative balance is
// credit-nature. Tally is not consistent about this across report types, so
// the convention here is an assumption that should be verified against the
// target engine before the numbers are relied on.
type Ledger struct {
	Name           string
	ParentGroup    string
	OpeningBalance *decimal.Decimal // nil if the engine omitted the field
	ClosingBalance *decimal.Decimal
}

// Balance returns the closing balance when present, falling back to the
// opening balance, then to zero.
func (l Ledger) Balance() decimal.Decimal {
	if l.ClosingBalance != nil {
		return *l.ClosingBalance
	}
	if l.OpeningBalance != nil {
		return *l.OpeningBalance
	}
	return decimal.Zero
}

// LedgerEntry is one side of a voucher. Amount keeps the engine's raw sign;
// IsDebit reflects the ISDEEMEDPOSITIVE flag.
type LedgerEntry struct {
	LedgerName string
	Amount     decimal.Decimal
	IsDebit    bool
}

// Voucher is a recorded transaction. When Entries is fully populated the
// amounts sum to zero within a tolerance of 0.01 (double-entry invariant);
// the decoder rejects vouchers that violate it.
type Voucher struct {
	Type        string
	Number      string
	Date        time.Time // zero if the engine omitted or the report has no date
	PartyLedger string
	Narration   string
	Entries     []LedgerEntry
	Amount      decimal.Decimal
}

// Group is a node in the chart-of-accounts hierarchy. An empty Parent marks
// a root group. Groups form a forest; a parent cycle is a decode error.
type Group struct {
	Name   string
	Parent string
}

// StockItem is one inventory item from a stock report. ClosingValue should
// approximate ClosingQty times ClosingRate when all three are present; the
// decoder tolerance-checks this but does not enforce it.
type StockItem struct {
	Name         string
	BaseUnit     string
	ClosingQty   *decimal.Decimal
	ClosingRate  *decimal.Decimal
	ClosingValue *decimal.Decimal
}

// ValueConsistent reports whether ClosingValue approximates
// ClosingQty times ClosingRate within the given tolerance. It is vacuously
// true unless all three fields are present.
func (s StockItem) ValueConsistent(tolerance decimal.Decimal) bool {
	if s.ClosingQty == nil || s.ClosingRate == nil || s.ClosingValue == nil {
		return true
	}
	expected := s.ClosingQty.Mul(*s.ClosingRate)
	return s.ClosingValue.Sub(expected).Abs().LessThanOrEqual(tolerance)
}

// Bill is one outstanding bill used by aging analysis.
type Bill struct {
	Number string
	Date   time.Time
	Amount decimal.Decimal
}

// Company identifies a company loaded in the engine.
type Company struct {
	Name string
}

// VoucherType is one entry from the voucher-type master list.
type VoucherType struct {
	Name   string
	Parent string
}

// AuditEntry is one row of the engine's audit trail.
type AuditEntry struct {
	Date          string // as reported; audit rows may carry ALTERDATE text
	Time          string
	VoucherType   string
	VoucherNumber string
	Action        string
	User          string
}

// GstEntry is one voucher row of a GST summary. TaxAmount is nil when the
// engine reports no explicit tax field; analytics then assumes a flat rate.
type GstEntry struct {
	VoucherType  string
	TaxableValue decimal.Decimal
	TaxAmount    *decimal.Decimal
}
