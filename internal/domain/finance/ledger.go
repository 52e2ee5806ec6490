package finance

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/whiplash-bot/internal/domain/money"
	"github.com/Spok95/whiplash-bot/internal/domain/period"
	"github.com/Spok95/whiplash-bot/internal/fault"
	"github.com/Spok95/whiplash-bot/internal/store"
)

const storageKey = "financialRecords"

// Ledger owns the financial record collection. All mutations validate
// fully before touching state and then persist the collection wholesale.
type Ledger struct {
	mu  sync.Mutex
	kv  store.KV
	log *slog.Logger

	records []Record
}

func NewLedger(kv store.KV, log *slog.Logger) *Ledger {
	return &Ledger{kv: kv, log: log, records: []Record{}}
}

// Load reads the stored collection. Malformed data resets the ledger to
// empty instead of propagating the failure.
func (l *Ledger) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var recs []Record
	if _, err := store.LoadJSON(ctx, l.kv, storageKey, &recs); err != nil {
		l.log.Error("load financial records", "err", err)
		l.records = []Record{}
		return
	}
	if recs != nil {
		l.records = recs
	}
}

// AddInput is the raw form input; Add parses and validates it entirely
// before the record is appended.
type AddInput struct {
	Date     string
	Type     string
	Category string
	Amount   string
	VatTax   string
}

func (l *Ledger) Add(ctx context.Context, in AddInput) (Record, error) {
	if _, ok := period.ParseDate(in.Date); !ok {
		return Record{}, fault.Validationf("please select a valid date")
	}
	typ := RecordType(in.Type)
	if typ != TypeIncome && typ != TypeExpense {
		return Record{}, fault.Validationf("please select a type")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return Record{}, fault.Validationf("please select a category")
	}
	amount, err := money.ParseAmount(in.Amount)
	if err != nil {
		return Record{}, fault.Validationf("please enter a valid non-negative amount")
	}
	// VAT falls back to zero instead of erroring
	vat := money.ParseOptionalAmount(in.VatTax)

	rec := Record{
		Date:     strings.TrimSpace(in.Date),
		Type:     typ,
		Category: category,
		Amount:   amount,
		VatTax:   vat,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return rec, l.persist(ctx)
}

// ClearAll wipes the ledger, the only way records are ever removed.
func (l *Ledger) ClearAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = []Record{}
	return l.persist(ctx)
}

func (l *Ledger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Filter selects records whose date falls in the same period instance as
// the anchor. Records with unparsable dates are excluded, not errored.
func (l *Ledger) Filter(p period.Period, anchor time.Time) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []Record{}
	for _, r := range l.records {
		rd, ok := period.ParseDate(r.Date)
		if !ok {
			continue
		}
		if period.Matches(rd, anchor, p) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize computes the aggregate line over an already-filtered set.
// VAT sums over all records regardless of type.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Type {
		case TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(r.Amount)
		case TypeExpense:
			s.TotalExpense = s.TotalExpense.Add(r.Amount)
		}
		s.TotalVat = s.TotalVat.Add(r.VatTax)
	}
	s.NetProfit = s.TotalIncome.Sub(s.TotalExpense)
	if !s.TotalIncome.IsZero() {
		s.ProfitMargin = s.NetProfit.Div(s.TotalIncome).Mul(decimal.NewFromInt(100))
	}
	return s
}

// TodayNetProfit is the dashboard figure: income minus expense over
// records whose stored date string equals today.
func (l *Ledger) TodayNetProfit(now time.Time) decimal.Decimal {
	today := now.Format("2006-01-02")
	l.mu.Lock()
	defer l.mu.Unlock()
	var income, expense decimal.Decimal
	for _, r := range l.records {
		if r.Date != today {
			continue
		}
		switch r.Type {
		case TypeIncome:
			income = income.Add(r.Amount)
		case TypeExpense:
			expense = expense.Add(r.Amount)
		}
	}
	return income.Sub(expense)
}

func (l *Ledger) persist(ctx context.Context) error {
	if err := store.SaveJSON(ctx, l.kv, storageKey, l.records); err != nil {
		l.log.Error("save financial records", "err", err)
		return fault.Persistence(err)
	}
	return nil
}
