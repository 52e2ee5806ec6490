package payroll

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/whiplash-bot/internal/fault"
	"github.com/Spok95/whiplash-bot/internal/store/memory"
)

var minWage = decimal.RequireFromString("30.00")

func newTestRoster(t *testing.T) (*Roster, *memory.Store) {
	t.Helper()
	kv := memory.New()
	r := NewRoster(kv, slog.Default(), minWage)
	r.Load(context.Background())
	return r, kv
}

func addEmp(t *testing.T, r *Roster, name, position, rate string) Employee {
	t.Helper()
	emp, err := r.Add(context.Background(), name, position, decimal.RequireFromString(rate))
	require.NoError(t, err)
	return emp
}

func TestAddEmployee(t *testing.T) {
	r, _ := newTestRoster(t)
	emp := addEmp(t, r, "Ana", "Barista", "100")
	assert.Equal(t, int64(1), emp.ID)
	assert.False(t, emp.IsClockedIn)

	second := addEmp(t, r, "Ben", "Cook", "80")
	assert.Equal(t, int64(2), second.ID)
}

func TestAddValidation(t *testing.T) {
	r, _ := newTestRoster(t)
	ctx := context.Background()

	_, err := r.Add(ctx, "  ", "Barista", decimal.NewFromInt(100))
	assert.True(t, fault.IsValidation(err))

	_, err = r.Add(ctx, "Ana", "", decimal.NewFromInt(100))
	assert.True(t, fault.IsValidation(err))

	_, err = r.Add(ctx, "Ana", "Barista", decimal.RequireFromString("29.99"))
	assert.True(t, fault.IsValidation(err), "below minimum wage")

	_, err = r.Add(ctx, "Ana", "Barista", minWage)
	assert.NoError(t, err, "exactly minimum wage is fine")
}

func TestAddRejectsDuplicateName(t *testing.T) {
	r, _ := newTestRoster(t)
	addEmp(t, r, "Ana", "Barista", "100")

	_, err := r.Add(context.Background(), "ANA", "Cook", decimal.NewFromInt(100))
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
	assert.Len(t, r.Employees(), 1)
}

func TestIDsNeverReused(t *testing.T) {
	r, _ := newTestRoster(t)
	addEmp(t, r, "Ana", "Barista", "100")
	ben := addEmp(t, r, "Ben", "Cook", "80")
	require.NoError(t, r.Delete(context.Background(), ben.ID))

	third := addEmp(t, r, "Cara", "Server", "90")
	assert.Equal(t, int64(2), third.ID, "max existing + 1")
}

func TestEdit(t *testing.T) {
	r, _ := newTestRoster(t)
	emp := addEmp(t, r, "Ana", "Barista", "100")
	addEmp(t, r, "Ben", "Cook", "80")

	// редактирование не перепроверяет уникальность имени
	got, err := r.Edit(context.Background(), emp.ID, "Ben", "Manager", decimal.NewFromInt(120))
	require.NoError(t, err)
	assert.Equal(t, "Ben", got.Name)
	assert.Equal(t, "Manager", got.Position)
}

func TestEditRejectsWhileClockedIn(t *testing.T) {
	r, _ := newTestRoster(t)
	emp := addEmp(t, r, "Ana", "Barista", "100")
	_, err := r.ClockInEmployee(context.Background(), emp.ID, time.Now())
	require.NoError(t, err)

	_, err = r.Edit(context.Background(), emp.ID, "Ana", "Manager", decimal.NewFromInt(120))
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
}

func TestDeleteCascadesTimeRecords(t *testing.T) {
	r, _ := newTestRoster(t)
	ctx := context.Background()
	ana := addEmp(t, r, "Ana", "Barista", "100")
	ben := addEmp(t, r, "Ben", "Cook", "80")

	_, err := r.ClockInEmployee(ctx, ana.ID, time.Now())
	require.NoError(t, err)
	_, err = r.ClockOutEmployee(ctx, ana.ID, time.Now())
	require.NoError(t, err)
	_, err = r.ClockInEmployee(ctx, ben.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, r.TimeRecords(), 3)

	require.NoError(t, r.Delete(ctx, ana.ID))
	assert.Len(t, r.Employees(), 1)
	assert.Len(t, r.TimeRecords(), 1, "only Ben's record survives")
	assert.Equal(t, ben.ID, r.TimeRecords()[0].EmployeeID)

	require.Equal(t, 1, r.Dashboard(time.Now()).ActiveEmployees)
	require.NoError(t, r.Delete(ctx, ben.ID))
	assert.Equal(t, 0, r.Dashboard(time.Now()).ActiveEmployees)
}

func TestClockStateMachine(t *testing.T) {
	r, _ := newTestRoster(t)
	ctx := context.Background()
	emp := addEmp(t, r, "Ana", "Barista", "100")

	_, err := r.ClockOutEmployee(ctx, emp.ID, time.Now())
	assert.True(t, fault.IsValidation(err), "cannot clock out while out")

	got, err := r.ClockInEmployee(ctx, emp.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, got.IsClockedIn)

	_, err = r.ClockInEmployee(ctx, emp.ID, time.Now())
	assert.True(t, fault.IsValidation(err), "cannot clock in twice")

	got, err = r.ClockOutEmployee(ctx, emp.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, got.IsClockedIn)
	assert.Len(t, r.TimeRecords(), 2)
}

func TestCalculatePayrollBounds(t *testing.T) {
	r, _ := newTestRoster(t)
	emp := addEmp(t, r, "Ana", "Barista", "100")
	ctx := context.Background()

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)
	_, err := r.ClockInEmployee(ctx, emp.ID, day.Add(9*time.Hour))
	require.NoError(t, err)
	_, err = r.ClockOutEmployee(ctx, emp.ID, day.Add(17*time.Hour))
	require.NoError(t, err)

	// конец периода расширяется до конца дня, поэтому смена учтена
	s, err := r.CalculatePayroll(day, day)
	require.NoError(t, err)
	assert.InDelta(t, 8, s.RegularHours, 1e-9)

	_, err = r.CalculatePayroll(day.AddDate(0, 0, 1), day)
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
}

func TestRosterRoundTrip(t *testing.T) {
	r, kv := newTestRoster(t)
	ctx := context.Background()
	emp := addEmp(t, r, "Ana", "Barista", "101.25")
	ts := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.Local)
	_, err := r.ClockInEmployee(ctx, emp.ID, ts)
	require.NoError(t, err)

	r2 := NewRoster(kv, slog.Default(), minWage)
	r2.Load(ctx)
	require.Len(t, r2.Employees(), 1)
	got := r2.Employees()[0]
	assert.Equal(t, "Ana", got.Name)
	assert.True(t, got.HourlyRate.Equal(decimal.RequireFromString("101.25")))
	assert.True(t, got.IsClockedIn)

	require.Len(t, r2.TimeRecords(), 1)
	assert.True(t, ts.Equal(r2.TimeRecords()[0].Timestamp))
}

func TestRosterPersistenceFailure(t *testing.T) {
	r, kv := newTestRoster(t)
	kv.FailWrites = errors.New("disk full")

	_, err := r.Add(context.Background(), "Ana", "Barista", decimal.NewFromInt(100))
	require.Error(t, err)
	assert.True(t, fault.IsPersistence(err))
	assert.Len(t, r.Employees(), 1, "the employee stays for the session")
}

func TestMalformedStoredRosterResets(t *testing.T) {
	kv := memory.New()
	_ = kv.Set(context.Background(), "employees", "[{broken")

	r := NewRoster(kv, slog.Default(), minWage)
	r.Load(context.Background())
	assert.Empty(t, r.Employees())
}
