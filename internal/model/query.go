package model

// ReportKind selects one of the engine's export reports.
type ReportKind string

const (
	ReportDayBook            ReportKind = "DayBook"
	ReportLedgerVouchers     ReportKind = "LedgerVouchers"
	ReportAllLedgers         ReportKind = "AllLedgers"
	ReportTrialBalance       ReportKind = "TrialBalance"
	ReportProfitLoss         ReportKind = "ProfitLoss"
	ReportBalanceSheet       ReportKind = "BalanceSheet"
	ReportCashFlow           ReportKind = "CashFlow"
	ReportStockSummary       ReportKind = "StockSummary"
	ReportReceivables        ReportKind = "Receivables"
	ReportPayables           ReportKind = "Payables"
	ReportGstSummary         ReportKind = "GstSummary"
	ReportBankReconciliation ReportKind = "BankReconciliation"
	ReportAgeAnalysis        ReportKind = "AgeAnalysis"
	ReportBudgetVsActual     ReportKind = "BudgetVsActual"
	ReportAuditTrail         ReportKind = "AuditTrail"
	ReportCompanyInfo        ReportKind = "CompanyInfo"
	ReportGroups             ReportKind = "Groups"
	ReportStockItems         ReportKind = "StockItems"
	ReportVoucherTypes       ReportKind = "VoucherTypes"
	ReportVoucherDetails     ReportKind = "VoucherDetails"
)

// Parameter keys accepted by ReportQuery. Date values are DD-MM-YYYY strings
// and are forwarded to the engine verbatim.
const (
	ParamFromDate      = "from_date"
	ParamToDate        = "to_date"
	ParamLedgerName    = "ledger_name"
	ParamAccountType   = "account_type"
	ParamVoucherNumber = "voucher_number"
	ParamVoucherType   = "voucher_type"
)

// ReportQuery is one export request. It is built per call and consumed once
// by the envelope encoder. Parameters the encoder does not recognize for the
// kind are dropped silently; the protocol tolerates extra or missing
// variables.
type ReportQuery struct {
	Kind   ReportKind
	Params map[string]string
}

// NewReportQuery builds a query over the given parameter pairs.
func NewReportQuery(kind ReportKind, pairs ...string) ReportQuery {
	params := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params[pairs[i]] = pairs[i+1]
	}
	return ReportQuery{Kind: kind, Params: params}
}
