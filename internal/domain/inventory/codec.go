package inventory

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Spok95/whiplash-bot/internal/fault"
)

// The sheet persists as an array of per-row arrays of {type,value} cell
// pairs, ten cells per row:
//
//	0 date, 1 category, 2 price, 3 quantityStock, 4 quantityReorder,
//	5 inventoryValue (derived), 6 quantityUsed, 7 ending (derived),
//	8 needReorder (derived), 9 remarks
type cell struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

const rowCells = 10

func encodeRow(r Row) []cell {
	categoryType := "select"
	if r.Category != "" && !isKnownCategory(r.Category) {
		categoryType = "text"
	}
	value := ""
	if !r.InventoryValue.IsZero() || r.Ending != "" {
		value = r.InventoryValue.StringFixed(2)
	}
	return []cell{
		{Type: "date", Value: r.Date},
		{Type: categoryType, Value: r.Category},
		{Type: "number", Value: numString(r.Price)},
		{Type: "number", Value: intString(r.QuantityStock)},
		{Type: "number", Value: intString(r.QuantityReorder)},
		{Type: "text", Value: value},
		{Type: "number", Value: intString(r.QuantityUsed)},
		{Type: "text", Value: r.Ending},
		{Type: "text", Value: r.NeedReorder},
		{Type: "text", Value: r.Remarks},
	}
}

// decodeRow is lenient the way the original sheet was: unparsable numbers
// read as zero. Derived cells are ignored and recomputed.
func decodeRow(cells []cell) (Row, error) {
	if len(cells) < rowCells {
		return Row{}, fault.Validationf("row has %d cells, want %d", len(cells), rowCells)
	}
	r := Row{
		Date:            strings.TrimSpace(cells[0].Value),
		Category:        strings.TrimSpace(cells[1].Value),
		Price:           parseDecimal(cells[2].Value),
		QuantityStock:   parseInt(cells[3].Value),
		QuantityReorder: parseInt(cells[4].Value),
		QuantityUsed:    parseInt(cells[6].Value),
		Remarks:         cells[9].Value,
	}
	r.Derived = Derive(r)
	return r, nil
}

func isKnownCategory(v string) bool {
	for _, c := range PredefinedCategories {
		if c == v {
			return true
		}
	}
	return false
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func numString(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.String()
}

func intString(n int) string { return strconv.Itoa(n) }
