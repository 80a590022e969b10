// Package analytics derives aging, reconciliation, budget-variance and GST
// figures from decoded entities. Every routine is a pure function of its
// input: no I/O, no state between invocations.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/model"
)

// BucketCount is the number of aging buckets.
const BucketCount = 4

// Bucket labels and risk ratings, indexed 0-30, 31-60, 61-90, 90+.
var (
	BucketLabels = [BucketCount]string{"0-30 days", "31-60 days", "61-90 days", "90+ days"}
	BucketRisks  = [BucketCount]string{"Low", "Medium", "High", "Critical"}
)

// AgingBucket is one row of an aging report.
type AgingBucket struct {
	Label   string
	Risk    string
	Amount  decimal.Decimal
	Percent float64
}

// AgedBill is one bill annotated with its age and bucket.
type AgedBill struct {
	Bill    model.Bill
	DaysOld int
	Bucket  int
}

// AgingReport is the outcome of aging a set of bills against a date.
type AgingReport struct {
	AsOf    time.Time
	Bills   []AgedBill
	Buckets [BucketCount]AgingBucket
	Total   decimal.Decimal
}

// Age assigns each bill to a bucket by days outstanding as of asOf.
// Boundaries are inclusive: exactly 30 days is still the first bucket,
// exactly 60 the second, exactly 90 the third. Amounts are accumulated as
// absolute values. A zero total yields 0% in every bucket.
func Age(asOf time.Time, bills []model.Bill) AgingReport {
	report := AgingReport{AsOf: asOf, Total: decimal.Zero}
	totals := [BucketCount]decimal.Decimal{decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero}

	for _, b := range bills {
		days := 0
		if !b.Date.IsZero() {
			days = int(asOf.Sub(b.Date).Hours() / 24)
		}
		bucket := bucketFor(days)
		amount := b.Amount.Abs()
		totals[bucket] = totals[bucket].Add(amount)
		report.Total = report.Total.Add(amount)
		report.Bills = append(report.Bills, AgedBill{Bill: b, DaysOld: days, Bucket: bucket})
	}

	for i := range report.Buckets {
		report.Buckets[i] = AgingBucket{
			Label:  BucketLabels[i],
			Risk:   BucketRisks[i],
			Amount: totals[i],
		}
		if report.Total.IsPositive() {
			pct, _ := totals[i].Div(report.Total).Mul(decimal.NewFromInt(100)).Float64()
			report.Buckets[i].Percent = pct
		}
	}
	return report
}

func bucketFor(daysOld int) int {
	switch {
	case daysOld <= 30:
		return 0
	case daysOld <= 60:
		return 1
	case daysOld <= 90:
		return 2
	default:
		return 3
	}
}

// CriticalShare returns the percentage of the total sitting in the 90+
// bucket, the usual risk trigger for receivables follow-up.
func (r AgingReport) CriticalShare() float64 {
	return r.Buckets[BucketCount-1].Percent
}
