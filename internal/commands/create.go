package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallygate-dev/tallygate/internal/model"
	"github.com/tallygate-dev/tallygate/internal/reports"
	"github.com/tallygate-dev/tallygate/internal/tallyerr"
)

func newCreateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ledger, stock item, or voucher in the engine",
	}
	cmd.AddCommand(
		newCreateLedgerCommand(opts),
		newCreateStockItemCommand(opts),
		newCreateVoucherCommand(opts),
	)
	return cmd
}

// runCreate renders the result even when the command came back unconfirmed:
// the engine's protocol cannot distinguish failure from an ambiguous
// response, so an unconfirmed command is a warning, not a CLI error.
func runCreate(cmd *cobra.Command, opts *rootOptions, op func(*reports.Service) (any, error)) error {
	svc, err := buildService(opts)
	if err != nil {
		return err
	}
	result, err := op(svc)
	if err != nil {
		var unconfirmed *tallyerr.UnconfirmedError
		if !errors.As(err, &unconfirmed) {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", unconfirmed)
	}
	return render(cmd.OutOrStdout(), result)
}

func newCreateLedgerCommand(opts *rootOptions) *cobra.Command {
	var name, group string
	var opening float64
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Create a ledger account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd, opts, func(svc *reports.Service) (any, error) {
				return svc.CreateLedger(cmd.Context(), model.CreateLedger{
					Name:           name,
					Group:          group,
					OpeningBalance: decimal.NewFromFloat(opening),
				})
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "ledger name (required)")
	cmd.Flags().StringVar(&group, "group", "", "parent group (required)")
	cmd.Flags().Float64Var(&opening, "opening-balance", 0, "opening balance")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func newCreateStockItemCommand(opts *rootOptions) *cobra.Command {
	var name, unit string
	var rate float64
	cmd := &cobra.Command{
		Use:   "stock-item",
		Short: "Create a stock item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd, opts, func(svc *reports.Service) (any, error) {
				return svc.CreateStockItem(cmd.Context(), model.CreateStockItem{
					Name: name,
					Unit: unit,
					Rate: decimal.NewFromFloat(rate),
				})
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "stock item name (required)")
	cmd.Flags().StringVar(&unit, "unit", "", "unit of measurement, e.g. Nos, Kgs (required)")
	cmd.Flags().Float64Var(&rate, "rate", 0, "standard rate")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}

func newCreateVoucherCommand(opts *rootOptions) *cobra.Command {
	var kind, date, party, method, narration, debit, credit string
	var amount float64
	cmd := &cobra.Command{
		Use:   "voucher",
		Short: "Record a sales, purchase, payment, receipt, or journal voucher",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd, opts, func(svc *reports.Service) (any, error) {
				return svc.CreateVoucher(cmd.Context(), model.CreateVoucher{
					Kind:         model.VoucherKind(kind),
					Date:         date,
					Party:        party,
					Method:       method,
					Narration:    narration,
					Amount:       decimal.NewFromFloat(amount),
					DebitLedger:  debit,
					CreditLedger: credit,
				})
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "voucher kind: Sales, Purchase, Payment, Receipt, Journal (required)")
	cmd.Flags().StringVar(&date, "date", "", "date in DD-MM-YYYY format (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount (required)")
	cmd.Flags().StringVar(&party, "party", "", "party ledger (sales/purchase/payment/receipt)")
	cmd.Flags().StringVar(&method, "method", "", "cash or bank ledger for payment/receipt, defaults to Cash")
	cmd.Flags().StringVar(&narration, "narration", "", "transaction description")
	cmd.Flags().StringVar(&debit, "debit", "", "debit ledger (journal)")
	cmd.Flags().StringVar(&credit, "credit", "", "credit ledger (journal)")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
