package finance

import "github.com/shopspring/decimal"

type RecordType string

const (
	TypeIncome  RecordType = "income"
	TypeExpense RecordType = "expense"
)

// Record is append-only: created once, never updated, removed only by a
// bulk clear of the whole ledger.
type Record struct {
	Date     string          `json:"date"` // YYYY-MM-DD as entered
	Type     RecordType      `json:"type"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	VatTax   decimal.Decimal `json:"vatTax"`
}

// Net is the amount less VAT; may go negative, that is not enforced.
func (r Record) Net() decimal.Decimal {
	return r.Amount.Sub(r.VatTax)
}

// CategoryOthers switches the category picker to free-form input.
const CategoryOthers = "Others"

var (
	IncomeCategories  = []string{"Sales", CategoryOthers}
	ExpenseCategories = []string{
		"Rent", "Electric", "Supplies", "Wages",
		"Marketing", "Maintenance", "Miscellaneous", CategoryOthers,
	}
)

func Categories(t RecordType) []string {
	switch t {
	case TypeIncome:
		return IncomeCategories
	case TypeExpense:
		return ExpenseCategories
	}
	return nil
}

// Summary holds the aggregate line of a filtered record set.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetProfit    decimal.Decimal
	ProfitMargin decimal.Decimal // percent; zero when there is no income
	TotalVat     decimal.Decimal
}
