package inventory

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Status bands on the ending/total-stock ratio. Empty means the derived
// fields are not populated for the row.
type Status string

const (
	StatusNone Status = ""
	StatusOK   Status = "ok"
	StatusLow  Status = "low-stock"
	StatusOut  Status = "out-of-stock"
)

// Row is one stock line of the sheet. Input fields are edited in place;
// Derived is recomputed on every change and on load.
type Row struct {
	Date            string
	Category        string
	Price           decimal.Decimal
	QuantityStock   int
	QuantityReorder int
	QuantityUsed    int
	Remarks         string

	Derived
}

// Derived are the computed fields. Ending and NeedReorder stay blank
// (not zero) when quantityStock or total stock is zero.
type Derived struct {
	InventoryValue decimal.Decimal
	Ending         string
	NeedReorder    string // "Yes" / "No" / ""
	Status         Status
}

// Derive recomputes the derived fields from the inputs. Pure and
// idempotent; callers persist the row set afterwards.
func Derive(r Row) Derived {
	total := r.QuantityStock + r.QuantityReorder
	ending := total - r.QuantityUsed

	d := Derived{
		InventoryValue: r.Price.Mul(decimal.NewFromInt(int64(ending))),
	}
	if r.QuantityStock <= 0 || total <= 0 {
		return d
	}
	d.Ending = strconv.Itoa(ending)
	ratio := float64(ending) / float64(total)
	switch {
	case ratio <= 0.25:
		d.Status = StatusOut
		d.NeedReorder = "Yes"
	case ratio <= 0.5:
		d.Status = StatusLow
		d.NeedReorder = "No"
	default:
		d.Status = StatusOK
		d.NeedReorder = "No"
	}
	return d
}

// Predefined categories keep their original storage keys; labels are what
// the operator sees.
var (
	PredefinedCategories = []string{"Category 1", "Category 2"}
	CategoryLabels       = map[string]string{
		"Category 1": "Bar",
		"Category 2": "Kitchen",
	}
)

func CategoryLabel(value string) string {
	if label, ok := CategoryLabels[value]; ok {
		return label
	}
	return value
}
