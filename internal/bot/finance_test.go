package bot

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Spok95/whiplash-bot/internal/domain/finance"
)

func TestSummaryTotals(t *testing.T) {
	sum := finance.Summarize([]finance.Record{
		{Type: finance.TypeIncome, Amount: decimal.NewFromInt(1000)},
		{Type: finance.TypeIncome, Amount: decimal.NewFromInt(500)},
		{Type: finance.TypeExpense, Amount: decimal.NewFromInt(600), VatTax: decimal.NewFromInt(72)},
	})

	got := summaryTotals(sum)
	assert.Contains(t, got, "Income: ₱1,500.00")
	assert.Contains(t, got, "Expenses: ₱600.00")
	assert.Contains(t, got, "VAT/tax: ₱72.00")
	assert.Contains(t, got, "Net profit: ₱900.00")
	// маржа всегда с двумя знаками
	assert.Contains(t, got, "Profit margin: 60.00%")
	assert.Equal(t, 5, strings.Count(got, "\n"))
}

func TestSummaryTotalsNoIncome(t *testing.T) {
	sum := finance.Summarize([]finance.Record{
		{Type: finance.TypeExpense, Amount: decimal.NewFromInt(250)},
	})
	got := summaryTotals(sum)
	assert.Contains(t, got, "Profit margin: 0.00%")
	assert.Contains(t, got, "Net profit: ₱-250.00")
}
