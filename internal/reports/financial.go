package reports

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/analytics"
	"github.com/tallygate-dev/tallygate/internal/classify"
	"github.com/tallygate-dev/tallygate/internal/decode"
	"github.com/tallygate-dev/tallygate/internal/model"
)

// stockValueTolerance bounds the accepted drift between a stock item's
// reported closing value and quantity times rate.
var stockValueTolerance = decimal.NewFromFloat(0.01)

// TrialBalance splits each ledger's balance into the debit or credit column
// by sign (positive is debit-nature) and totals both columns.
func (s *Service) TrialBalance(ctx context.Context, fromDate, toDate string) (*TrialBalance, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportTrialBalance,
		model.ParamFromDate, fromDate, model.ParamToDate, toDate))
	if err != nil {
		return nil, err
	}
	ledgers, errs := decode.Ledgers(root)

	tb := &TrialBalance{
		FromDate:    fromDate,
		ToDate:      toDate,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Warnings:    warnings(errs),
	}
	for _, l := range ledgers {
		balance := l.Balance()
		switch {
		case balance.IsPositive():
			tb.Rows = append(tb.Rows, TrialBalanceRow{Name: l.Name, Debit: balance, Credit: decimal.Zero})
			tb.TotalDebit = tb.TotalDebit.Add(balance)
		case balance.IsNegative():
			tb.Rows = append(tb.Rows, TrialBalanceRow{Name: l.Name, Debit: decimal.Zero, Credit: balance.Abs()})
			tb.TotalCredit = tb.TotalCredit.Add(balance.Abs())
		}
	}
	return tb, nil
}

// ProfitLoss groups classified income and expense balances for a period.
func (s *Service) ProfitLoss(ctx context.Context, fromDate, toDate string) (*ProfitLoss, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportProfitLoss,
		model.ParamFromDate, fromDate, model.ParamToDate, toDate))
	if err != nil {
		return nil, err
	}
	ledgers, errs := decode.Ledgers(root)

	pl := &ProfitLoss{
		FromDate:      fromDate,
		ToDate:        toDate,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Warnings:      warnings(errs),
	}
	for _, l := range ledgers {
		amount := l.Balance().Abs()
		if amount.IsZero() {
			continue
		}
		switch s.table.Classify(l.Name, l.ParentGroup) {
		case classify.Income:
			pl.Income = append(pl.Income, AccountBalance{Name: l.Name, Amount: amount})
			pl.TotalIncome = pl.TotalIncome.Add(amount)
		case classify.Expense:
			pl.Expenses = append(pl.Expenses, AccountBalance{Name: l.Name, Amount: amount})
			pl.TotalExpenses = pl.TotalExpenses.Add(amount)
		}
	}
	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpenses)
	return pl, nil
}

// BalanceSheet groups classified asset and liability balances as of a date.
// Debtors count as assets, creditors as liabilities.
func (s *Service) BalanceSheet(ctx context.Context, asOf string) (*BalanceSheet, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportBalanceSheet,
		model.ParamFromDate, openingPeriodStart, model.ParamToDate, asOf))
	if err != nil {
		return nil, err
	}
	ledgers, errs := decode.Ledgers(root)

	bs := &BalanceSheet{
		AsOf:             asOf,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		Warnings:         warnings(errs),
	}
	for _, l := range ledgers {
		amount := l.Balance().Abs()
		if amount.IsZero() {
			continue
		}
		switch s.table.Classify(l.Name, l.ParentGroup) {
		case classify.Asset, classify.Debtor:
			bs.Assets = append(bs.Assets, AccountBalance{Name: l.Name, Amount: amount})
			bs.TotalAssets = bs.TotalAssets.Add(amount)
		case classify.Liability, classify.Creditor:
			bs.Liabilities = append(bs.Liabilities, AccountBalance{Name: l.Name, Amount: amount})
			bs.TotalLiabilities = bs.TotalLiabilities.Add(amount)
		}
	}
	bs.Difference = bs.TotalAssets.Sub(bs.TotalLiabilities)
	return bs, nil
}

// CashFlow splits cash and bank account balances by sign for a period.
func (s *Service) CashFlow(ctx context.Context, fromDate, toDate string) (*CashFlow, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportCashFlow,
		model.ParamFromDate, fromDate, model.ParamToDate, toDate))
	if err != nil {
		return nil, err
	}
	ledgers, errs := decode.Ledgers(root)

	cf := &CashFlow{
		FromDate:     fromDate,
		ToDate:       toDate,
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		Warnings:     warnings(errs),
	}
	for _, l := range ledgers {
		if !classify.Matches(l.Name, l.ParentGroup, "cash", "bank") {
			continue
		}
		balance := l.Balance()
		switch {
		case balance.IsPositive():
			cf.Inflows = append(cf.Inflows, AccountBalance{Name: l.Name, Amount: balance})
			cf.TotalInflow = cf.TotalInflow.Add(balance)
		case balance.IsNegative():
			cf.Outflows = append(cf.Outflows, AccountBalance{Name: l.Name, Amount: balance.Abs()})
			cf.TotalOutflow = cf.TotalOutflow.Add(balance.Abs())
		}
	}
	cf.NetFlow = cf.TotalInflow.Sub(cf.TotalOutflow)
	return cf, nil
}

// StockSummary values inventory as of a date and tolerance-checks each
// item's reported closing value against quantity times rate.
func (s *Service) StockSummary(ctx context.Context, asOf string) (*StockSummary, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportStockSummary,
		model.ParamFromDate, asOf, model.ParamToDate, asOf))
	if err != nil {
		return nil, err
	}
	items, errs := decode.StockItems(root)

	summary := &StockSummary{AsOf: asOf, TotalValue: decimal.Zero, Warnings: warnings(errs)}
	for _, item := range items {
		summary.Items = append(summary.Items, StockLine{
			Item:            item,
			ValueConsistent: item.ValueConsistent(stockValueTolerance),
		})
		if item.ClosingValue != nil {
			summary.TotalValue = summary.TotalValue.Add(*item.ClosingValue)
		}
	}
	return summary, nil
}

// Receivables lists debtor-classified ledgers with debit balances open as
// of a date.
func (s *Service) Receivables(ctx context.Context, asOf string) (*Outstanding, error) {
	return s.outstanding(ctx, model.ReportReceivables, asOf, "receivable")
}

// Payables lists creditor-classified ledgers with credit balances open as
// of a date.
func (s *Service) Payables(ctx context.Context, asOf string) (*Outstanding, error) {
	return s.outstanding(ctx, model.ReportPayables, asOf, "payable")
}

func (s *Service) outstanding(ctx context.Context, kind model.ReportKind, asOf, side string) (*Outstanding, error) {
	root, err := s.export(ctx, model.NewReportQuery(kind,
		model.ParamFromDate, asOf, model.ParamToDate, asOf))
	if err != nil {
		return nil, err
	}
	ledgers, errs := decode.Ledgers(root)

	out := &Outstanding{AsOf: asOf, Side: side, Total: decimal.Zero, Warnings: warnings(errs)}
	for _, l := range ledgers {
		category := s.table.Classify(l.Name, l.ParentGroup)
		balance := l.Balance()
		switch {
		case side == "receivable" && category == classify.Debtor && balance.IsPositive():
			out.Parties = append(out.Parties, AccountBalance{Name: l.Name, Amount: balance})
			out.Total = out.Total.Add(balance)
		case side == "payable" && category == classify.Creditor && balance.IsNegative():
			out.Parties = append(out.Parties, AccountBalance{Name: l.Name, Amount: balance.Abs()})
			out.Total = out.Total.Add(balance.Abs())
		}
	}
	return out, nil
}

// GstSummary totals outward and inward supplies for a period. Tax figures
// derived from the assumed flat rate are flagged in the result.
func (s *Service) GstSummary(ctx context.Context, fromDate, toDate string) (*GstReport, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportGstSummary,
		model.ParamFromDate, fromDate, model.ParamToDate, toDate))
	if err != nil {
		return nil, err
	}
	entries, errs := decode.GstEntries(root)
	return &GstReport{
		FromDate: fromDate,
		ToDate:   toDate,
		Summary:  analytics.SummarizeGst(entries),
		Warnings: warnings(errs),
	}, nil
}

// BankReconciliation estimates the reconciliation state of one bank ledger
// as of a date. The result is an estimate by transaction size, not a
// statement-backed reconciliation.
func (s *Service) BankReconciliation(ctx context.Context, bankLedger, asOf string) (*Reconciliation, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportBankReconciliation,
		model.ParamLedgerName, bankLedger,
		model.ParamFromDate, openingPeriodStart, model.ParamToDate, asOf))
	if err != nil {
		return nil, err
	}
	vouchers, errs := decode.Vouchers(root)
	return &Reconciliation{
		Ledger:       bankLedger,
		AsOf:         asOf,
		Transactions: len(vouchers),
		Estimate:     analytics.EstimateReconciliation(vouchers),
		Warnings:     warnings(errs),
	}, nil
}

// AgeAnalysis buckets one ledger's outstanding bills by days open as of a
// date (DD-MM-YYYY).
func (s *Service) AgeAnalysis(ctx context.Context, ledger, asOf string) (*AgeAnalysis, error) {
	asOfDate, err := decode.ParseDate(asOf)
	if err != nil {
		return nil, err
	}
	root, err := s.export(ctx, model.NewReportQuery(model.ReportAgeAnalysis,
		model.ParamLedgerName, ledger,
		model.ParamFromDate, openingPeriodStart, model.ParamToDate, asOf))
	if err != nil {
		return nil, err
	}
	bills, errs := decode.Bills(root)
	return &AgeAnalysis{
		Ledger:   ledger,
		AsOf:     asOf,
		Aging:    analytics.Age(asOfDate, bills),
		Warnings: warnings(errs),
	}, nil
}

// BudgetVsActual compares classified closing balances against the service's
// budget source for a period.
func (s *Service) BudgetVsActual(ctx context.Context, fromDate, toDate string) (*BudgetVsActual, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportBudgetVsActual,
		model.ParamFromDate, fromDate, model.ParamToDate, toDate))
	if err != nil {
		return nil, err
	}
	ledgers, errs := decode.Ledgers(root)
	return &BudgetVsActual{
		FromDate: fromDate,
		ToDate:   toDate,
		Report:   analytics.CompareBudget(ledgers, s.table, s.budget),
		Warnings: warnings(errs),
	}, nil
}

// AuditTrail lists change records for a period with per-action counts.
func (s *Service) AuditTrail(ctx context.Context, fromDate, toDate string) (*AuditTrail, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportAuditTrail,
		model.ParamFromDate, fromDate, model.ParamToDate, toDate))
	if err != nil {
		return nil, err
	}
	trail := &AuditTrail{FromDate: fromDate, ToDate: toDate, Entries: decode.AuditEntries(root)}
	for _, e := range trail.Entries {
		action := strings.ToLower(e.Action)
		switch {
		case strings.Contains(action, "create"), strings.Contains(action, "new"):
			trail.Created++
		case strings.Contains(action, "modify"), strings.Contains(action, "alter"), strings.Contains(action, "update"):
			trail.Modified++
		case strings.Contains(action, "delete"), strings.Contains(action, "cancel"):
			trail.Deleted++
		}
	}
	return trail, nil
}
