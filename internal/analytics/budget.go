package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/classify"
	"github.com/tallygate-dev/tallygate/internal/model"
)

// BudgetSource supplies the budgeted figure for an account, or reports that
// no budget exists for it. Swap in a real feed here without changing the
// comparison's shape.
type BudgetSource interface {
	Budget(name string, category classify.Category) (decimal.Decimal, bool)
}

// PlaceholderBudget is the stand-in budget used when no real feed exists:
// a flat figure per category for revenue and expense accounts. The numbers
// are demo values, not anyone's actual budget.
type PlaceholderBudget struct{}

var (
	placeholderRevenueBudget = decimal.NewFromInt(100000)
	placeholderExpenseBudget = decimal.NewFromInt(80000)
)

// Budget returns the placeholder figure for income and expense accounts and
// no budget for everything else.
func (PlaceholderBudget) Budget(_ string, category classify.Category) (decimal.Decimal, bool) {
	switch category {
	case classify.Income:
		return placeholderRevenueBudget, true
	case classify.Expense:
		return placeholderExpenseBudget, true
	default:
		return decimal.Zero, false
	}
}

// BudgetLine compares one account against its budget. For revenue a
// positive variance means actual exceeded budget; for expenses a positive
// variance means actual came in under budget.
type BudgetLine struct {
	Name        string
	Category    classify.Category
	Budget      decimal.Decimal
	Actual      decimal.Decimal
	Variance    decimal.Decimal
	VariancePct float64
}

// BudgetReport is the outcome of a budget-vs-actual comparison.
type BudgetReport struct {
	Revenue []BudgetLine
	Expense []BudgetLine

	TotalRevenueBudget decimal.Decimal
	TotalRevenueActual decimal.Decimal
	TotalExpenseBudget decimal.Decimal
	TotalExpenseActual decimal.Decimal

	BudgetedProfit decimal.Decimal
	ActualProfit   decimal.Decimal
	ProfitVariance decimal.Decimal
}

// CompareBudget classifies each ledger and compares income and expense
// accounts against the budget source. Ledgers the source has no budget for
// are skipped. Actuals are absolute closing balances.
func CompareBudget(ledgers []model.Ledger, table *classify.Table, source BudgetSource) BudgetReport {
	report := BudgetReport{
		TotalRevenueBudget: decimal.Zero,
		TotalRevenueActual: decimal.Zero,
		TotalExpenseBudget: decimal.Zero,
		TotalExpenseActual: decimal.Zero,
	}

	for _, l := range ledgers {
		category := table.Classify(l.Name, l.ParentGroup)
		budget, ok := source.Budget(l.Name, category)
		if !ok {
			continue
		}
		actual := l.Balance().Abs()

		line := BudgetLine{
			Name:     l.Name,
			Category: category,
			Budget:   budget,
			Actual:   actual,
		}
		switch category {
		case classify.Income:
			line.Variance = actual.Sub(budget)
			report.Revenue = append(report.Revenue, withPct(line))
			report.TotalRevenueBudget = report.TotalRevenueBudget.Add(budget)
			report.TotalRevenueActual = report.TotalRevenueActual.Add(actual)
		case classify.Expense:
			line.Variance = budget.Sub(actual)
			report.Expense = append(report.Expense, withPct(line))
			report.TotalExpenseBudget = report.TotalExpenseBudget.Add(budget)
			report.TotalExpenseActual = report.TotalExpenseActual.Add(actual)
		}
	}

	report.BudgetedProfit = report.TotalRevenueBudget.Sub(report.TotalExpenseBudget)
	report.ActualProfit = report.TotalRevenueActual.Sub(report.TotalExpenseActual)
	report.ProfitVariance = report.ActualProfit.Sub(report.BudgetedProfit)
	return report
}

func withPct(line BudgetLine) BudgetLine {
	if line.Budget.IsPositive() {
		pct, _ := line.Variance.Div(line.Budget).Mul(decimal.NewFromInt(100)).Float64()
		line.VariancePct = pct
	}
	return line
}
