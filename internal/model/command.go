package model

import "github.com/shopspring/decimal"

// VoucherKind names the voucher types the adapter can create.
type VoucherKind string

const (
	VoucherSales    VoucherKind = "Sales"
	VoucherPurchase VoucherKind = "Purchase"
	VoucherPayment  VoucherKind = "Payment"
	VoucherReceipt  VoucherKind = "Receipt"
	VoucherJournal  VoucherKind = "Journal"
)

// CreateLedger is the command to create a new ledger account.
type CreateLedger struct {
	Name           string
	Group          string
	OpeningBalance decimal.Decimal
}

// CreateStockItem is the command to create a new inventory item.
type CreateStockItem struct {
	Name string
	Unit string
	Rate decimal.Decimal
}

// CreateVoucher is the command to record a transaction. Party, Method,
// DebitLedger and CreditLedger are used per kind:
//
//   - Sales/Purchase: Party is the customer or supplier ledger; the contra
//     side is the built-in Sales or Purchase ledger.
//   - Payment/Receipt: Party plus Method (the cash or bank ledger, defaults
//     to "Cash").
//   - Journal: DebitLedger and CreditLedger, Party unused.
//
// Date is a DD-MM-YYYY string forwarded to the engine verbatim.
type CreateVoucher struct {
	Kind         VoucherKind
	Date         string
	Party        string
	Method       string
	Narration    string
	Amount       decimal.Decimal
	DebitLedger  string
	CreditLedger string
}

// BackupRequest asks the engine to back up company data to a path on the
// machine the engine runs on.
type BackupRequest struct {
	Path string
}
