package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/model"
)

// unclearedThreshold is the absolute amount above which a book transaction
// is assumed not yet cleared by the bank. The adapter has no bank-statement
// feed, so this is a stand-in heuristic, not real clearing data.
var unclearedThreshold = decimal.NewFromInt(5000)

// ReconciliationEstimate partitions book transactions into an estimated
// reconciliation statement. Estimated is always true: without actual bank
// statement data the split is a guess by transaction size, and consumers
// must present it as such, never as a cleared reconciliation.
type ReconciliationEstimate struct {
	BookBalance          decimal.Decimal
	UnclearedDeposits    decimal.Decimal
	UnclearedWithdrawals decimal.Decimal
	EstimatedBankBalance decimal.Decimal
	Estimated            bool
}

// EstimateReconciliation sums voucher amounts into a book balance and
// flags amounts above the threshold as likely uncleared, split by sign into
// deposits and withdrawals.
func EstimateReconciliation(vouchers []model.Voucher) ReconciliationEstimate {
	est := ReconciliationEstimate{
		BookBalance:          decimal.Zero,
		UnclearedDeposits:    decimal.Zero,
		UnclearedWithdrawals: decimal.Zero,
		Estimated:            true,
	}

	for _, v := range vouchers {
		est.BookBalance = est.BookBalance.Add(v.Amount)
		if v.Amount.Abs().GreaterThan(unclearedThreshold) {
			if v.Amount.IsPositive() {
				est.UnclearedDeposits = est.UnclearedDeposits.Add(v.Amount)
			} else {
				est.UnclearedWithdrawals = est.UnclearedWithdrawals.Add(v.Amount.Abs())
			}
		}
	}

	est.EstimatedBankBalance = est.BookBalance.
		Add(est.UnclearedDeposits).
		Sub(est.UnclearedWithdrawals)
	return est
}
