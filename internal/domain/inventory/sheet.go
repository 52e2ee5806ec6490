package inventory

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Spok95/whiplash-bot/internal/domain/money"
	"github.com/Spok95/whiplash-bot/internal/domain/period"
	"github.com/Spok95/whiplash-bot/internal/fault"
	"github.com/Spok95/whiplash-bot/internal/store"
)

const (
	dataKey       = "inventoryData"
	categoriesKey = "customCategories"
)

// Editable input fields of a row.
type Field string

const (
	FieldDate            Field = "date"
	FieldPrice           Field = "price"
	FieldQuantityStock   Field = "stock"
	FieldQuantityReorder Field = "reorder"
	FieldQuantityUsed    Field = "used"
	FieldRemarks         Field = "remarks"
)

// Sheet owns the inventory rows and the custom category list.
type Sheet struct {
	mu  sync.Mutex
	kv  store.KV
	log *slog.Logger

	rows   []Row
	custom []string
}

func NewSheet(kv store.KV, log *slog.Logger) *Sheet {
	return &Sheet{kv: kv, log: log, rows: []Row{}, custom: []string{}}
}

// Load restores rows and custom categories; malformed data resets to a
// single blank row for today, like a fresh sheet.
func (s *Sheet) Load(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var custom []string
	if _, err := store.LoadJSON(ctx, s.kv, categoriesKey, &custom); err != nil {
		s.log.Error("load custom categories", "err", err)
	} else if custom != nil {
		s.custom = custom
	}

	var stored [][]cell
	found, err := store.LoadJSON(ctx, s.kv, dataKey, &stored)
	if err != nil {
		s.log.Error("load inventory data", "err", err)
		s.resetLocked(now)
		return
	}
	if !found {
		s.resetLocked(now)
		return
	}
	rows := make([]Row, 0, len(stored))
	for _, cells := range stored {
		r, err := decodeRow(cells)
		if err != nil {
			s.log.Error("decode inventory row", "err", err)
			s.resetLocked(now)
			return
		}
		rows = append(rows, r)
	}
	s.rows = rows
}

func (s *Sheet) resetLocked(now time.Time) {
	s.rows = []Row{blankRow(now.Format("2006-01-02"))}
}

func blankRow(date string) Row {
	r := Row{Date: date}
	r.Derived = Derive(r)
	return r
}

// Entry pairs a row with its stable position in the sheet, which edit and
// delete operations address.
type Entry struct {
	Index int
	Row   Row
}

// FilterByDate returns the rows for one date (empty date matches all).
// Selecting a date that has no row yet implicitly creates a blank row for
// it, mirroring the sheet's "a day always has a row" behavior.
func (s *Sheet) FilterByDate(ctx context.Context, date string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.entriesForLocked(date)
	if date == "" || len(matched) > 0 {
		return matched, nil
	}
	s.rows = append(s.rows, blankRow(date))
	matched = s.entriesForLocked(date)
	return matched, s.persistRows(ctx)
}

func (s *Sheet) entriesForLocked(date string) []Entry {
	out := []Entry{}
	for i, r := range s.rows {
		if date == "" || r.Date == date {
			out = append(out, Entry{Index: i, Row: r})
		}
	}
	return out
}

func (s *Sheet) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *Sheet) Row(idx int) (Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.rows) {
		return Row{}, false
	}
	return s.rows[idx], true
}

// AddRow appends a blank row for the given date and persists.
func (s *Sheet) AddRow(ctx context.Context, date string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, blankRow(date))
	return Entry{Index: len(s.rows) - 1, Row: s.rows[len(s.rows)-1]}, s.persistRows(ctx)
}

// SetField validates and writes one input field, recomputes the derived
// fields and persists the whole sheet.
func (s *Sheet) SetField(ctx context.Context, idx int, field Field, value string) (Row, error) {
	value = strings.TrimSpace(value)

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.rows) {
		return Row{}, fault.Validationf("row not found")
	}
	r := s.rows[idx]
	switch field {
	case FieldDate:
		if _, ok := period.ParseDate(value); !ok {
			return Row{}, fault.Validationf("enter a date as YYYY-MM-DD")
		}
		r.Date = value
	case FieldPrice:
		price, err := money.ParseAmount(value)
		if err != nil {
			return Row{}, err
		}
		r.Price = price
	case FieldQuantityStock, FieldQuantityReorder, FieldQuantityUsed:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return Row{}, fault.Validationf("enter a non-negative whole number")
		}
		switch field {
		case FieldQuantityStock:
			r.QuantityStock = n
		case FieldQuantityReorder:
			r.QuantityReorder = n
		default:
			r.QuantityUsed = n
		}
	case FieldRemarks:
		r.Remarks = value
	default:
		return Row{}, fault.Validationf("unknown field")
	}
	r.Derived = Derive(r)
	s.rows[idx] = r
	return r, s.persistRows(ctx)
}

// SetCategory assigns a category. A free-form value longer than two
// characters joins the custom category list (deduplicated
// case-insensitively).
func (s *Sheet) SetCategory(ctx context.Context, idx int, value string) (Row, error) {
	value = strings.TrimSpace(value)

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.rows) {
		return Row{}, fault.Validationf("row not found")
	}
	if value != "" && !isKnownCategory(value) && !s.hasCustomLocked(value) {
		if len(value) <= 2 {
			return Row{}, fault.Validationf("category name must be longer than 2 characters")
		}
		s.custom = append(s.custom, value)
		if err := store.SaveJSON(ctx, s.kv, categoriesKey, s.custom); err != nil {
			s.log.Error("save custom categories", "err", err)
		}
	}
	r := s.rows[idx]
	r.Category = value
	r.Derived = Derive(r)
	s.rows[idx] = r
	return r, s.persistRows(ctx)
}

func (s *Sheet) hasCustomLocked(value string) bool {
	for _, c := range s.custom {
		if strings.EqualFold(c, value) {
			return true
		}
	}
	return false
}

func (s *Sheet) CustomCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.custom))
	copy(out, s.custom)
	return out
}

func (s *Sheet) DeleteRow(ctx context.Context, idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.rows) {
		return fault.Validationf("row not found")
	}
	s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	return s.persistRows(ctx)
}

// ReorderNeeded lists the rows currently flagged for reorder, for the
// admin notifications and the daily digest.
func (s *Sheet) ReorderNeeded() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Row{}
	for _, r := range s.rows {
		if r.NeedReorder == "Yes" {
			out = append(out, r)
		}
	}
	return out
}

func (s *Sheet) persistRows(ctx context.Context) error {
	encoded := make([][]cell, len(s.rows))
	for i, r := range s.rows {
		encoded[i] = encodeRow(r)
	}
	if err := store.SaveJSON(ctx, s.kv, dataKey, encoded); err != nil {
		s.log.Error("save inventory data", "err", err)
		return fault.Persistence(err)
	}
	return nil
}
