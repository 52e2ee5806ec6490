package payroll

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/whiplash-bot/internal/domain/period"
	"github.com/Spok95/whiplash-bot/internal/fault"
	"github.com/Spok95/whiplash-bot/internal/store"
)

const (
	employeesKey   = "employees"
	timeRecordsKey = "timeRecords"
)

// Roster owns the employee collection and their time records. Every
// mutation validates first, then persists both collections wholesale.
type Roster struct {
	mu  sync.Mutex
	kv  store.KV
	log *slog.Logger

	minimumWage decimal.Decimal
	employees   []Employee
	timeRecords []TimeRecord
}

func NewRoster(kv store.KV, log *slog.Logger, minimumWage decimal.Decimal) *Roster {
	return &Roster{
		kv: kv, log: log, minimumWage: minimumWage,
		employees:   []Employee{},
		timeRecords: []TimeRecord{},
	}
}

func (r *Roster) MinimumWage() decimal.Decimal { return r.minimumWage }

// Load restores both collections; malformed data resets the affected
// collection to empty.
func (r *Roster) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var emps []Employee
	if _, err := store.LoadJSON(ctx, r.kv, employeesKey, &emps); err != nil {
		r.log.Error("load employees", "err", err)
	} else if emps != nil {
		r.employees = emps
	}

	var recs []TimeRecord
	if _, err := store.LoadJSON(ctx, r.kv, timeRecordsKey, &recs); err != nil {
		r.log.Error("load time records", "err", err)
	} else if recs != nil {
		r.timeRecords = recs
	}
}

func (r *Roster) Employees() []Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Employee, len(r.employees))
	copy(out, r.employees)
	return out
}

func (r *Roster) Get(id int64) (Employee, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

func (r *Roster) TimeRecords() []TimeRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TimeRecord, len(r.timeRecords))
	copy(out, r.timeRecords)
	return out
}

func (r *Roster) validate(name, position string, rate decimal.Decimal) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(position) == "" {
		return fault.Validationf("please fill all fields")
	}
	if rate.LessThan(r.minimumWage) {
		return fault.Validationf("hourly rate must be at least %s", r.minimumWage.StringFixed(2))
	}
	return nil
}

// Add creates an employee; the name must be unique case-insensitively
// and the rate at least the minimum wage. IDs grow monotonically
// (max existing + 1).
func (r *Roster) Add(ctx context.Context, name, position string, rate decimal.Decimal) (Employee, error) {
	if err := r.validate(name, position, rate); err != nil {
		return Employee{}, err
	}
	name = strings.TrimSpace(name)
	position = strings.TrimSpace(position)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if strings.EqualFold(e.Name, name) {
			return Employee{}, fault.Validationf("an employee with this name already exists")
		}
	}
	var maxID int64
	for _, e := range r.employees {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	emp := Employee{ID: maxID + 1, Name: name, Position: position, HourlyRate: rate}
	r.employees = append(r.employees, emp)
	return emp, r.persist(ctx)
}

// Edit updates an employee that is not currently clocked in. Uniqueness
// is not re-checked on edit; only Add guards the name.
func (r *Roster) Edit(ctx context.Context, id int64, name, position string, rate decimal.Decimal) (Employee, error) {
	if err := r.validate(name, position, rate); err != nil {
		return Employee{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(id)
	if idx < 0 {
		return Employee{}, fault.Validationf("employee not found")
	}
	if r.employees[idx].IsClockedIn {
		return Employee{}, fault.Validationf("cannot edit an employee who is currently clocked in")
	}
	r.employees[idx].Name = strings.TrimSpace(name)
	r.employees[idx].Position = strings.TrimSpace(position)
	r.employees[idx].HourlyRate = rate
	return r.employees[idx], r.persist(ctx)
}

// Delete removes the employee and cascades to all their time records.
func (r *Roster) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(id)
	if idx < 0 {
		return fault.Validationf("employee not found")
	}
	r.employees = append(r.employees[:idx], r.employees[idx+1:]...)
	kept := r.timeRecords[:0]
	for _, tr := range r.timeRecords {
		if tr.EmployeeID != id {
			kept = append(kept, tr)
		}
	}
	r.timeRecords = kept
	return r.persist(ctx)
}

// ClockInEmployee transitions ClockedOut → ClockedIn and appends one
// time record. Clocking in twice fails.
func (r *Roster) ClockInEmployee(ctx context.Context, id int64, now time.Time) (Employee, error) {
	return r.clock(ctx, id, ClockIn, now)
}

// ClockOutEmployee transitions ClockedIn → ClockedOut and appends one
// time record. Clocking out while out fails.
func (r *Roster) ClockOutEmployee(ctx context.Context, id int64, now time.Time) (Employee, error) {
	return r.clock(ctx, id, ClockOut, now)
}

func (r *Roster) clock(ctx context.Context, id int64, action Action, now time.Time) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(id)
	if idx < 0 {
		return Employee{}, fault.Validationf("employee not found")
	}
	emp := &r.employees[idx]
	switch action {
	case ClockIn:
		if emp.IsClockedIn {
			return Employee{}, fault.Validationf("this employee is already clocked in")
		}
		emp.IsClockedIn = true
	case ClockOut:
		if !emp.IsClockedIn {
			return Employee{}, fault.Validationf("this employee is not clocked in")
		}
		emp.IsClockedIn = false
	}
	r.timeRecords = append(r.timeRecords, TimeRecord{
		EmployeeID: id, Action: action, Timestamp: now,
	})
	return *emp, r.persist(ctx)
}

func (r *Roster) indexLocked(id int64) int {
	for i, e := range r.employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Dashboard computes the live stats over the current collections.
func (r *Roster) Dashboard(now time.Time) DashboardStats {
	return Dashboard(r.Employees(), r.TimeRecords(), now)
}

// CalculatePayroll parses the pay period bounds and runs the summary.
// The end date is extended to its last instant.
func (r *Roster) CalculatePayroll(start, end time.Time) (PeriodSummary, error) {
	if start.After(end) {
		return PeriodSummary{}, fault.Validationf("pay period start must be before pay period end")
	}
	return SummarizePeriod(r.Employees(), r.TimeRecords(), start, period.EndOfDay(end)), nil
}

func (r *Roster) persist(ctx context.Context) error {
	if err := store.SaveJSON(ctx, r.kv, employeesKey, r.employees); err != nil {
		r.log.Error("save employees", "err", err)
		return fault.Persistence(err)
	}
	if err := store.SaveJSON(ctx, r.kv, timeRecordsKey, r.timeRecords); err != nil {
		r.log.Error("save time records", "err", err)
		return fault.Persistence(err)
	}
	return nil
}
