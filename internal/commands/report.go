package commands

import (
	"github.com/spf13/cobra"

	"github.com/tallygate-dev/tallygate/internal/reports"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch a report from the engine",
	}

	cmd.AddCommand(
		newDayBookCommand(opts),
		newLedgerVouchersCommand(opts),
		newListCommand(opts, "ledgers", "List all ledger accounts with categories",
			func(svc *reports.Service, c *cobra.Command) (any, error) { return svc.AllLedgers(c.Context()) }),
		newListCommand(opts, "groups", "List the chart-of-accounts groups",
			func(svc *reports.Service, c *cobra.Command) (any, error) { return svc.Groups(c.Context()) }),
		newListCommand(opts, "companies", "List companies loaded in the engine",
			func(svc *reports.Service, c *cobra.Command) (any, error) { return svc.CompanyInfo(c.Context()) }),
		newListCommand(opts, "stock-items", "List the stock item masters",
			func(svc *reports.Service, c *cobra.Command) (any, error) { return svc.StockItems(c.Context()) }),
		newListCommand(opts, "voucher-types", "List the voucher type masters",
			func(svc *reports.Service, c *cobra.Command) (any, error) { return svc.VoucherTypes(c.Context()) }),
		newVoucherDetailsCommand(opts),
		newPeriodCommand(opts, "trial-balance", "Trial balance for a period",
			func(svc *reports.Service, c *cobra.Command, from, to string) (any, error) {
				return svc.TrialBalance(c.Context(), from, to)
			}),
		newPeriodCommand(opts, "profit-loss", "Profit and loss for a period",
			func(svc *reports.Service, c *cobra.Command, from, to string) (any, error) {
				return svc.ProfitLoss(c.Context(), from, to)
			}),
		newPeriodCommand(opts, "cash-flow", "Cash and bank movement for a period",
			func(svc *reports.Service, c *cobra.Command, from, to string) (any, error) {
				return svc.CashFlow(c.Context(), from, to)
			}),
		newPeriodCommand(opts, "gst", "GST summary for a period",
			func(svc *reports.Service, c *cobra.Command, from, to string) (any, error) {
				return svc.GstSummary(c.Context(), from, to)
			}),
		newPeriodCommand(opts, "budget", "Budget vs actual for a period",
			func(svc *reports.Service, c *cobra.Command, from, to string) (any, error) {
				return svc.BudgetVsActual(c.Context(), from, to)
			}),
		newPeriodCommand(opts, "audit-trail", "Audit trail for a period",
			func(svc *reports.Service, c *cobra.Command, from, to string) (any, error) {
				return svc.AuditTrail(c.Context(), from, to)
			}),
		newAsOfCommand(opts, "balance-sheet", "Balance sheet as of a date",
			func(svc *reports.Service, c *cobra.Command, date string) (any, error) {
				return svc.BalanceSheet(c.Context(), date)
			}),
		newAsOfCommand(opts, "stock-summary", "Inventory valuation as of a date",
			func(svc *reports.Service, c *cobra.Command, date string) (any, error) {
				return svc.StockSummary(c.Context(), date)
			}),
		newAsOfCommand(opts, "receivables", "Outstanding receivables as of a date",
			func(svc *reports.Service, c *cobra.Command, date string) (any, error) {
				return svc.Receivables(c.Context(), date)
			}),
		newAsOfCommand(opts, "payables", "Outstanding payables as of a date",
			func(svc *reports.Service, c *cobra.Command, date string) (any, error) {
				return svc.Payables(c.Context(), date)
			}),
		newLedgerAsOfCommand(opts, "bank-reconciliation", "Estimated reconciliation for a bank ledger",
			func(svc *reports.Service, c *cobra.Command, ledger, date string) (any, error) {
				return svc.BankReconciliation(c.Context(), ledger, date)
			}),
		newLedgerAsOfCommand(opts, "age-analysis", "Aging buckets for a ledger's bills",
			func(svc *reports.Service, c *cobra.Command, ledger, date string) (any, error) {
				return svc.AgeAnalysis(c.Context(), ledger, date)
			}),
	)

	return cmd
}

func newDayBookCommand(opts *rootOptions) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "daybook",
		Short: "Vouchers recorded on one date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(svc *reports.Service) (any, error) {
				return svc.DayBook(cmd.Context(), date)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date in DD-MM-YYYY format (required)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newLedgerVouchersCommand(opts *rootOptions) *cobra.Command {
	var ledger, from, to string
	cmd := &cobra.Command{
		Use:   "ledger-vouchers",
		Short: "Vouchers touching one ledger in a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(svc *reports.Service) (any, error) {
				return svc.LedgerVouchers(cmd.Context(), ledger, from, to)
			})
		},
	}
	cmd.Flags().StringVar(&ledger, "ledger", "", "ledger name (required)")
	cmd.Flags().StringVar(&from, "from", "", "start date in DD-MM-YYYY format (required)")
	cmd.Flags().StringVar(&to, "to", "", "end date in DD-MM-YYYY format (required)")
	_ = cmd.MarkFlagRequired("ledger")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newVoucherDetailsCommand(opts *rootOptions) *cobra.Command {
	var number, voucherType string
	cmd := &cobra.Command{
		Use:   "voucher",
		Short: "Details of one voucher by number and type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(svc *reports.Service) (any, error) {
				return svc.VoucherDetails(cmd.Context(), number, voucherType)
			})
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "voucher number (required)")
	cmd.Flags().StringVar(&voucherType, "type", "", "voucher type (required)")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newListCommand(opts *rootOptions, use, short string, op func(*reports.Service, *cobra.Command) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(svc *reports.Service) (any, error) {
				return op(svc, cmd)
			})
		},
	}
}

func newPeriodCommand(opts *rootOptions, use, short string, op func(*reports.Service, *cobra.Command, string, string) (any, error)) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(svc *reports.Service) (any, error) {
				return op(svc, cmd, from, to)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start date in DD-MM-YYYY format (required)")
	cmd.Flags().StringVar(&to, "to", "", "end date in DD-MM-YYYY format (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newAsOfCommand(opts *rootOptions, use, short string, op func(*reports.Service, *cobra.Command, string) (any, error)) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(svc *reports.Service) (any, error) {
				return op(svc, cmd, date)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date in DD-MM-YYYY format (required)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newLedgerAsOfCommand(opts *rootOptions, use, short string, op func(*reports.Service, *cobra.Command, string, string) (any, error)) *cobra.Command {
	var ledger, date string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(svc *reports.Service) (any, error) {
				return op(svc, cmd, ledger, date)
			})
		},
	}
	cmd.Flags().StringVar(&ledger, "ledger", "", "ledger name (required)")
	cmd.Flags().StringVar(&date, "date", "", "date in DD-MM-YYYY format (required)")
	_ = cmd.MarkFlagRequired("ledger")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
