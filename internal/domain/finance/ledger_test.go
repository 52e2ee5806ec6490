package finance

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/whiplash-bot/internal/domain/period"
	"github.com/Spok95/whiplash-bot/internal/fault"
	"github.com/Spok95/whiplash-bot/internal/store/memory"
)

func newTestLedger(t *testing.T) (*Ledger, *memory.Store) {
	t.Helper()
	kv := memory.New()
	l := NewLedger(kv, slog.Default())
	l.Load(context.Background())
	return l, kv
}

func mustAdd(t *testing.T, l *Ledger, date, typ, cat, amount, vat string) Record {
	t.Helper()
	rec, err := l.Add(context.Background(), AddInput{
		Date: date, Type: typ, Category: cat, Amount: amount, VatTax: vat,
	})
	require.NoError(t, err)
	return rec
}

func TestAddValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   AddInput
	}{
		{"bad date", AddInput{Date: "soon", Type: "income", Category: "Sales", Amount: "10"}},
		{"bad type", AddInput{Date: "2026-03-15", Type: "profit", Category: "Sales", Amount: "10"}},
		{"empty category", AddInput{Date: "2026-03-15", Type: "income", Category: "  ", Amount: "10"}},
		{"bad amount", AddInput{Date: "2026-03-15", Type: "income", Category: "Sales", Amount: "lots"}},
		{"negative amount", AddInput{Date: "2026-03-15", Type: "income", Category: "Sales", Amount: "-10"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Add(ctx, tc.in)
			require.Error(t, err)
			assert.True(t, fault.IsValidation(err))
			assert.Equal(t, 0, l.Len(), "a rejected record must not change the ledger")
		})
	}
}

func TestAddVatFallsBackToZero(t *testing.T) {
	l, _ := newTestLedger(t)
	rec := mustAdd(t, l, "2026-03-15", "income", "Sales", "100", "garbage")
	assert.True(t, rec.VatTax.IsZero())

	rec = mustAdd(t, l, "2026-03-15", "income", "Sales", "100", "-5")
	assert.True(t, rec.VatTax.IsZero())

	rec = mustAdd(t, l, "2026-03-15", "income", "Sales", "100", "12")
	assert.True(t, rec.VatTax.Equal(decimal.NewFromInt(12)))
}

func TestSummarize(t *testing.T) {
	l, _ := newTestLedger(t)
	mustAdd(t, l, "2026-03-10", "income", "Sales", "1000", "120")
	mustAdd(t, l, "2026-03-11", "income", "Sales", "500", "0")
	mustAdd(t, l, "2026-03-12", "expense", "Rent", "600", "72")

	s := Summarize(l.Records())
	assert.Equal(t, "1500", s.TotalIncome.String())
	assert.Equal(t, "600", s.TotalExpense.String())
	assert.Equal(t, "900", s.NetProfit.String())
	assert.Equal(t, "192", s.TotalVat.String(), "VAT sums over both types")
	assert.Equal(t, "60", s.ProfitMargin.String())
}

func TestSummarizeNoIncome(t *testing.T) {
	l, _ := newTestLedger(t)
	mustAdd(t, l, "2026-03-12", "expense", "Rent", "600", "0")

	s := Summarize(l.Records())
	assert.Equal(t, "-600", s.NetProfit.String())
	assert.True(t, s.ProfitMargin.IsZero(), "margin stays zero without income")
}

func TestFilterSkipsUnparsableDates(t *testing.T) {
	l, kv := newTestLedger(t)
	mustAdd(t, l, "2026-03-15", "income", "Sales", "10", "")

	// запись с битой датой могла попасть в хранилище извне
	_ = kv.Set(context.Background(), "financialRecords",
		`[{"date":"2026-03-15","type":"income","category":"Sales","amount":"10","vatTax":"0"},`+
			`{"date":"???","type":"expense","category":"Rent","amount":"5","vatTax":"0"}]`)
	l.Load(context.Background())
	require.Equal(t, 2, l.Len())

	anchor := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local)
	got := l.Filter(period.Daily, anchor)
	assert.Len(t, got, 1)
}

func TestFilterByPeriod(t *testing.T) {
	l, _ := newTestLedger(t)
	mustAdd(t, l, "2026-03-09", "income", "Sales", "1", "")
	mustAdd(t, l, "2026-03-15", "income", "Sales", "2", "")
	mustAdd(t, l, "2026-04-01", "expense", "Rent", "3", "")
	mustAdd(t, l, "2025-03-10", "income", "Sales", "4", "")

	anchor := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.Local)
	assert.Len(t, l.Filter(period.Weekly, anchor), 2)
	assert.Len(t, l.Filter(period.Monthly, anchor), 2)
	assert.Len(t, l.Filter(period.Yearly, anchor), 3)
	assert.Len(t, l.Filter(period.Daily, anchor), 0)
}

func TestClearAll(t *testing.T) {
	l, kv := newTestLedger(t)
	mustAdd(t, l, "2026-03-15", "income", "Sales", "10", "")
	require.Equal(t, 1, l.Len())

	require.NoError(t, l.ClearAll(context.Background()))
	assert.Equal(t, 0, l.Len())

	// очистка сохраняется
	l2 := NewLedger(kv, slog.Default())
	l2.Load(context.Background())
	assert.Equal(t, 0, l2.Len())
}

func TestPersistRoundTrip(t *testing.T) {
	l, kv := newTestLedger(t)
	want := mustAdd(t, l, "2026-03-15", "income", "Sales", "1234.50", "148.14")

	l2 := NewLedger(kv, slog.Default())
	l2.Load(context.Background())
	require.Equal(t, 1, l2.Len())
	got := l2.Records()[0]
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.Category, got.Category)
	assert.True(t, want.Amount.Equal(got.Amount))
	assert.True(t, want.VatTax.Equal(got.VatTax))
}

func TestPersistenceFailureKeepsSessionState(t *testing.T) {
	l, kv := newTestLedger(t)
	kv.FailWrites = errors.New("disk full")

	_, err := l.Add(context.Background(), AddInput{
		Date: "2026-03-15", Type: "income", Category: "Sales", Amount: "10",
	})
	require.Error(t, err)
	assert.True(t, fault.IsPersistence(err))
	assert.Equal(t, 1, l.Len(), "the record stays in memory for the session")
}

func TestMalformedStoredDataResets(t *testing.T) {
	kv := memory.New()
	_ = kv.Set(context.Background(), "financialRecords", "{not json")

	l := NewLedger(kv, slog.Default())
	l.Load(context.Background())
	assert.Equal(t, 0, l.Len())
}

func TestTodayNetProfit(t *testing.T) {
	l, _ := newTestLedger(t)
	now := time.Now()
	todayStr := now.Format("2006-01-02")
	mustAdd(t, l, todayStr, "income", "Sales", "100", "")
	mustAdd(t, l, todayStr, "expense", "Rent", "30", "")
	mustAdd(t, l, "2020-01-01", "income", "Sales", "999", "")

	assert.Equal(t, "70", l.TodayNetProfit(now).String())
}
