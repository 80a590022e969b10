// Package reports exposes one operation per report query and creation
// command. Each operation performs one encode, one transport round trip and
// one decode, holds no state between calls, and returns a structured result
// or a typed error. Rendering the results as text is the caller's concern.
package reports

import (
	"context"

	"go.uber.org/zap"

	"github.com/tallygate-dev/tallygate/internal/analytics"
	"github.com/tallygate-dev/tallygate/internal/classify"
	"github.com/tallygate-dev/tallygate/internal/decode"
	"github.com/tallygate-dev/tallygate/internal/envelope"
	"github.com/tallygate-dev/tallygate/internal/model"
	"github.com/tallygate-dev/tallygate/internal/transport"
)

// openingPeriodStart is the period-open date sent for as-of reports
// (balance sheet, reconciliation, aging) whose engine request needs a range
// start. Pinned to a financial-year open the way the engine expects.
const openingPeriodStart = "01-04-2023"

// Service runs adapter operations against one engine endpoint.
type Service struct {
	transport transport.Transport
	table     *classify.Table
	budget    analytics.BudgetSource
	log       *zap.Logger
}

// NewService creates a Service. A nil table falls back to the built-in
// keyword table, a nil budget source to the placeholder budget, and a nil
// logger to a no-op one.
func NewService(t transport.Transport, table *classify.Table, budget analytics.BudgetSource, log *zap.Logger) *Service {
	if table == nil {
		table = classify.DefaultTable()
	}
	if budget == nil {
		budget = analytics.PlaceholderBudget{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{transport: t, table: table, budget: budget, log: log}
}

// export encodes a query, performs the round trip, and decodes the response
// to a node tree.
func (s *Service) export(ctx context.Context, q model.ReportQuery) (*envelope.Node, error) {
	payload, err := envelope.EncodeQuery(q)
	if err != nil {
		return nil, err
	}
	s.log.Debug("export", zap.String("kind", string(q.Kind)))
	body, err := s.transport.Send(ctx, payload)
	if err != nil {
		return nil, err
	}
	return envelope.Decode(body)
}

// warnings flattens per-entity decode errors for inclusion in a result.
func warnings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

// DayBook returns the vouchers recorded on date (DD-MM-YYYY).
func (s *Service) DayBook(ctx context.Context, date string) (*DayBook, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportDayBook,
		model.ParamFromDate, date, model.ParamToDate, date))
	if err != nil {
		return nil, err
	}
	vouchers, errs := decode.Vouchers(root)
	return &DayBook{Date: date, Vouchers: vouchers, Warnings: warnings(errs)}, nil
}

// LedgerVouchers returns the vouchers touching one ledger in a period.
func (s *Service) LedgerVouchers(ctx context.Context, ledger, fromDate, toDate string) (*LedgerVouchers, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportLedgerVouchers,
		model.ParamLedgerName, ledger,
		model.ParamFromDate, fromDate, model.ParamToDate, toDate))
	if err != nil {
		return nil, err
	}
	vouchers, errs := decode.Vouchers(root)
	return &LedgerVouchers{
		Ledger:   ledger,
		FromDate: fromDate,
		ToDate:   toDate,
		Vouchers: vouchers,
		Warnings: warnings(errs),
	}, nil
}

// AllLedgers returns every ledger master with its heuristic category.
func (s *Service) AllLedgers(ctx context.Context) (*LedgerList, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportAllLedgers))
	if err != nil {
		return nil, err
	}
	ledgers, errs := decode.Ledgers(root)
	list := &LedgerList{Warnings: warnings(errs)}
	for _, l := range ledgers {
		list.Ledgers = append(list.Ledgers, LedgerSummary{
			Name:        l.Name,
			ParentGroup: l.ParentGroup,
			Category:    s.table.Classify(l.Name, l.ParentGroup),
			Balance:     l.Balance(),
		})
	}
	return list, nil
}

// Groups returns the group forest from the chart of accounts.
func (s *Service) Groups(ctx context.Context) (*GroupList, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportGroups))
	if err != nil {
		return nil, err
	}
	groups, errs := decode.Groups(root)
	return &GroupList{Groups: groups, Warnings: warnings(errs)}, nil
}

// CompanyInfo returns the companies loaded in the engine.
func (s *Service) CompanyInfo(ctx context.Context) (*CompanyInfo, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportCompanyInfo))
	if err != nil {
		return nil, err
	}
	companies, errs := decode.Companies(root)
	return &CompanyInfo{Companies: companies, Warnings: warnings(errs)}, nil
}

// StockItems returns the stock item master list.
func (s *Service) StockItems(ctx context.Context) (*StockItemList, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportStockItems))
	if err != nil {
		return nil, err
	}
	items, errs := decode.StockItems(root)
	return &StockItemList{Items: items, Warnings: warnings(errs)}, nil
}

// VoucherTypes returns the voucher type master list.
func (s *Service) VoucherTypes(ctx context.Context) (*VoucherTypeList, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportVoucherTypes))
	if err != nil {
		return nil, err
	}
	types, errs := decode.VoucherTypes(root)
	return &VoucherTypeList{Types: types, Warnings: warnings(errs)}, nil
}

// VoucherDetails looks one voucher up by number and type. A voucher the
// engine does not know is an empty result, not an error.
func (s *Service) VoucherDetails(ctx context.Context, number, voucherType string) (*VoucherDetails, error) {
	root, err := s.export(ctx, model.NewReportQuery(model.ReportVoucherDetails,
		model.ParamVoucherNumber, number,
		model.ParamVoucherType, voucherType))
	if err != nil {
		return nil, err
	}
	vouchers, errs := decode.Vouchers(root)
	details := &VoucherDetails{Warnings: warnings(errs)}
	if len(vouchers) > 0 {
		details.Found = true
		details.Voucher = vouchers[0]
	}
	return details, nil
}
