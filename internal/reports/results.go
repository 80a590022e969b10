package reports

import (
	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/analytics"
	"github.com/tallygate-dev/tallygate/internal/classify"
	"github.com/tallygate-dev/tallygate/internal/model"
)

// Every report result carries Warnings: per-entity decode failures that did
// not abort the call. A partial result with named problems beats a total
// failure; only a malformed document is fatal.

// AccountBalance is one named amount in a report section.
type AccountBalance struct {
	Name   string
	Amount decimal.Decimal
}

// DayBook lists the vouchers recorded on one date.
type DayBook struct {
	Date     string
	Vouchers []model.Voucher
	Warnings []string
}

// LedgerVouchers lists the vouchers touching one ledger in a period.
type LedgerVouchers struct {
	Ledger   string
	FromDate string
	ToDate   string
	Vouchers []model.Voucher
	Warnings []string
}

// LedgerSummary is one account with its heuristic category.
type LedgerSummary struct {
	Name        string
	ParentGroup string
	Category    classify.Category
	Balance     decimal.Decimal
}

// LedgerList is the full account list.
type LedgerList struct {
	Ledgers  []LedgerSummary
	Warnings []string
}

// TrialBalanceRow is one ledger's debit or credit column entry.
type TrialBalanceRow struct {
	Name   string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// TrialBalance splits ledger balances into debit and credit columns by the
// positive-is-debit sign convention.
type TrialBalance struct {
	FromDate    string
	ToDate      string
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Warnings    []string
}

// ProfitLoss groups income against expenses for a period.
type ProfitLoss struct {
	FromDate      string
	ToDate        string
	Income        []AccountBalance
	Expenses      []AccountBalance
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
	Warnings      []string
}

// BalanceSheet groups assets against liabilities as of a date. Debtor
// accounts count as assets and creditor accounts as liabilities.
type BalanceSheet struct {
	AsOf             string
	Assets           []AccountBalance
	Liabilities      []AccountBalance
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	Difference       decimal.Decimal
	Warnings         []string
}

// CashFlow splits cash and bank account movements by sign.
type CashFlow struct {
	FromDate     string
	ToDate       string
	Inflows      []AccountBalance
	Outflows     []AccountBalance
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	NetFlow      decimal.Decimal
	Warnings     []string
}

// StockLine is one inventory item with its value-consistency check.
type StockLine struct {
	Item model.StockItem
	// ValueConsistent is false when the reported closing value strays from
	// quantity times rate beyond tolerance. Informational only.
	ValueConsistent bool
}

// StockSummary is the inventory valuation as of a date.
type StockSummary struct {
	AsOf       string
	Items      []StockLine
	TotalValue decimal.Decimal
	Warnings   []string
}

// Outstanding lists party balances open as of a date, for receivables or
// payables depending on Side.
type Outstanding struct {
	AsOf     string
	Side     string // "receivable" or "payable"
	Parties  []AccountBalance
	Total    decimal.Decimal
	Warnings []string
}

// GstReport is the period's GST summary. When the engine reported no
// explicit tax amounts the figures derive from a flat assumed rate; the
// embedded RateAssumed flag says so and must reach the consumer.
type GstReport struct {
	FromDate string
	ToDate   string
	Summary  analytics.GstSummary
	Warnings []string
}

// Reconciliation is the estimated statement for one bank ledger. The
// embedded estimate is heuristic, not derived from bank-statement data.
type Reconciliation struct {
	Ledger       string
	AsOf         string
	Transactions int
	Estimate     analytics.ReconciliationEstimate
	Warnings     []string
}

// AgeAnalysis is the aging breakdown for one ledger.
type AgeAnalysis struct {
	Ledger   string
	AsOf     string
	Aging    analytics.AgingReport
	Warnings []string
}

// BudgetVsActual compares closing balances against the budget source.
type BudgetVsActual struct {
	FromDate string
	ToDate   string
	Report   analytics.BudgetReport
	Warnings []string
}

// AuditTrail lists change records with per-action counts.
type AuditTrail struct {
	FromDate string
	ToDate   string
	Entries  []model.AuditEntry
	Created  int
	Modified int
	Deleted  int
}

// CompanyInfo lists the companies loaded in the engine.
type CompanyInfo struct {
	Companies []model.Company
	Warnings  []string
}

// GroupList is the chart-of-accounts group forest, flat in document order.
type GroupList struct {
	Groups   []model.Group
	Warnings []string
}

// StockItemList is the stock item master list.
type StockItemList struct {
	Items    []model.StockItem
	Warnings []string
}

// VoucherTypeList is the voucher type master list.
type VoucherTypeList struct {
	Types    []model.VoucherType
	Warnings []string
}

// VoucherDetails is one voucher looked up by number and type. Found is
// false when the engine returned no matching voucher, which is a legitimate
// empty result, not an error.
type VoucherDetails struct {
	Found    bool
	Voucher  model.Voucher
	Warnings []string
}

// CreateResult reports the outcome of a creation command. Confirmed means
// the response carried the engine's success marker; without it the command
// may still have succeeded, the protocol just cannot say.
type CreateResult struct {
	Command   string
	Confirmed bool
	Response  string
}

// BackupResult reports the outcome of a backup request.
type BackupResult struct {
	Path      string
	Confirmed bool
	Response  string
}
