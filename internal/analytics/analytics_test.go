package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallygate-dev/tallygate/internal/classify"
	"github.com/tallygate-dev/tallygate/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func bill(date string, amount string) model.Bill {
	return model.Bill{Date: day(date), Amount: dec(amount)}
}

func TestAge_BucketBoundariesInclusive(t *testing.T) {
	asOf := day("2024-06-30")

	cases := []struct {
		daysOld int
		bucket  int
	}{
		{0, 0}, {30, 0},
		{31, 1}, {60, 1},
		{61, 2}, {90, 2},
		{91, 3}, {365, 3},
	}
	for _, tc := range cases {
		date := asOf.AddDate(0, 0, -tc.daysOld).Format("2006-01-02")
		report := Age(asOf, []model.Bill{bill(date, "100.00")})
		require.Len(t, report.Bills, 1)
		assert.Equal(t, tc.daysOld, report.Bills[0].DaysOld)
		assert.Equal(t, tc.bucket, report.Bills[0].Bucket, "daysOld=%d", tc.daysOld)
	}
}

func TestAge_Percentages(t *testing.T) {
	asOf := day("2024-06-30")
	report := Age(asOf, []model.Bill{
		bill("2024-06-20", "300.00"),
		bill("2024-01-01", "-100.00"),
	})

	assert.True(t, report.Total.Equal(dec("400.00")))
	assert.True(t, report.Buckets[0].Amount.Equal(dec("300.00")))
	assert.True(t, report.Buckets[3].Amount.Equal(dec("100.00")))
	assert.InDelta(t, 75.0, report.Buckets[0].Percent, 0.001)
	assert.InDelta(t, 25.0, report.CriticalShare(), 0.001)
	assert.Equal(t, "Critical", report.Buckets[3].Risk)
}

func TestAge_ZeroTotalYieldsZeroPercents(t *testing.T) {
	report := Age(day("2024-06-30"), nil)
	assert.True(t, report.Total.IsZero())
	for _, b := range report.Buckets {
		assert.Zero(t, b.Percent)
	}
}

func TestAge_UndatedBillLandsInFirstBucket(t *testing.T) {
	report := Age(day("2024-06-30"), []model.Bill{{Amount: dec("50")}})
	require.Len(t, report.Bills, 1)
	assert.Equal(t, 0, report.Bills[0].Bucket)
}

func TestEstimateReconciliation_ThresholdSplit(t *testing.T) {
	est := EstimateReconciliation([]model.Voucher{
		{Amount: dec("1000.00")},
		{Amount: dec("8000.00")},
		{Amount: dec("-6000.00")},
		{Amount: dec("-2000.00")},
	})

	assert.True(t, est.Estimated)
	assert.True(t, est.BookBalance.Equal(dec("1000.00")))
	assert.True(t, est.UnclearedDeposits.Equal(dec("8000.00")))
	assert.True(t, est.UnclearedWithdrawals.Equal(dec("6000.00")))
	// book + deposits - withdrawals
	assert.True(t, est.EstimatedBankBalance.Equal(dec("3000.00")))
}

func TestEstimateReconciliation_ExactThresholdIsCleared(t *testing.T) {
	est := EstimateReconciliation([]model.Voucher{{Amount: dec("5000.00")}})
	assert.True(t, est.UnclearedDeposits.IsZero())
	assert.True(t, est.EstimatedBankBalance.Equal(dec("5000.00")))
}

func closing(name, parent, balance string) model.Ledger {
	b := dec(balance)
	return model.Ledger{Name: name, ParentGroup: parent, ClosingBalance: &b}
}

func TestCompareBudget_VarianceDirections(t *testing.T) {
	ledgers := []model.Ledger{
		closing("Sales Account", "", "120000.00"),
		closing("Office Rent", "", "90000.00"),
		closing("HDFC Bank", "", "50000.00"),
	}
	report := CompareBudget(ledgers, classify.DefaultTable(), PlaceholderBudget{})

	require.Len(t, report.Revenue, 1)
	require.Len(t, report.Expense, 1)

	// Revenue over budget is a favorable positive variance.
	assert.True(t, report.Revenue[0].Variance.Equal(dec("20000.00")))
	assert.InDelta(t, 20.0, report.Revenue[0].VariancePct, 0.001)

	// Expense over budget is an unfavorable negative variance.
	assert.True(t, report.Expense[0].Variance.Equal(dec("-10000.00")))
	assert.InDelta(t, -12.5, report.Expense[0].VariancePct, 0.001)

	assert.True(t, report.BudgetedProfit.Equal(dec("20000")))
	assert.True(t, report.ActualProfit.Equal(dec("30000.00")))
	assert.True(t, report.ProfitVariance.Equal(dec("10000.00")))
}

func TestCompareBudget_NegativeBalanceUsesAbsolute(t *testing.T) {
	ledgers := []model.Ledger{closing("Sales Account", "", "-120000.00")}
	report := CompareBudget(ledgers, classify.DefaultTable(), PlaceholderBudget{})
	require.Len(t, report.Revenue, 1)
	assert.True(t, report.Revenue[0].Actual.Equal(dec("120000.00")))
}

type fixedBudget map[string]decimal.Decimal

func (f fixedBudget) Budget(name string, _ classify.Category) (decimal.Decimal, bool) {
	b, ok := f[name]
	return b, ok
}

func TestCompareBudget_SourceSkipsUnbudgeted(t *testing.T) {
	ledgers := []model.Ledger{
		closing("Sales Account", "", "500.00"),
		closing("Other Income", "", "900.00"),
	}
	source := fixedBudget{"Sales Account": dec("400")}
	report := CompareBudget(ledgers, classify.DefaultTable(), source)
	require.Len(t, report.Revenue, 1)
	assert.Equal(t, "Sales Account", report.Revenue[0].Name)
}

func taxed(vtype, taxable, tax string) model.GstEntry {
	e := model.GstEntry{VoucherType: vtype, TaxableValue: dec(taxable)}
	if tax != "" {
		t := dec(tax)
		e.TaxAmount = &t
	}
	return e
}

func TestSummarizeGst_ExplicitTax(t *testing.T) {
	s := SummarizeGst([]model.GstEntry{
		taxed("Sales", "1000.00", "180.00"),
		taxed("Purchase", "500.00", "90.00"),
	})
	assert.False(t, s.RateAssumed)
	assert.True(t, s.TaxableSales.Equal(dec("1000.00")))
	assert.True(t, s.OutputTax.Equal(dec("180.00")))
	assert.True(t, s.TaxablePurchases.Equal(dec("500.00")))
	assert.True(t, s.InputTax.Equal(dec("90.00")))
	assert.True(t, s.NetLiability.Equal(dec("90.00")))
}

func TestSummarizeGst_AssumedRateFlagged(t *testing.T) {
	s := SummarizeGst([]model.GstEntry{taxed("Credit Sales", "1000.00", "")})
	assert.True(t, s.RateAssumed)
	assert.True(t, s.OutputTax.Equal(dec("180.00")))
}

func TestSummarizeGst_IgnoredRowsDoNotFlagAssumption(t *testing.T) {
	s := SummarizeGst([]model.GstEntry{
		taxed("Journal", "1000.00", ""),
		taxed("Sales", "-10.00", ""),
	})
	assert.False(t, s.RateAssumed)
	assert.True(t, s.TaxableSales.IsZero())
	assert.True(t, s.NetLiability.IsZero())
}
