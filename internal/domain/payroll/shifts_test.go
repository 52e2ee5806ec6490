package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int, hour, min int) time.Time {
	return time.Date(2026, time.March, day, hour, min, 0, 0, time.Local)
}

func rec(id int64, action Action, ts time.Time) TimeRecord {
	return TimeRecord{EmployeeID: id, Action: action, Timestamp: ts}
}

func TestPairShiftsComplete(t *testing.T) {
	records := []TimeRecord{
		rec(1, ClockIn, at(10, 9, 0)),
		rec(1, ClockOut, at(10, 17, 30)),
	}
	shifts := PairShifts(records, false, time.Time{})
	require.Len(t, shifts, 1)
	assert.InDelta(t, 8.5, shifts[0].Hours, 1e-9)
	require.NotNil(t, shifts[0].Out)
}

func TestPairShiftsSortsBeforePairing(t *testing.T) {
	// записи в обратном порядке
	records := []TimeRecord{
		rec(1, ClockOut, at(10, 17, 0)),
		rec(1, ClockIn, at(10, 9, 0)),
	}
	shifts := PairShifts(records, false, time.Time{})
	require.Len(t, shifts, 1)
	assert.InDelta(t, 8, shifts[0].Hours, 1e-9)
}

func TestPairShiftsOpenShift(t *testing.T) {
	records := []TimeRecord{rec(1, ClockIn, at(10, 9, 0))}
	now := at(10, 13, 0)

	shifts := PairShifts(records, true, now)
	require.Len(t, shifts, 1)
	assert.Nil(t, shifts[0].Out)
	assert.InDelta(t, 4, shifts[0].Hours, 1e-9)

	// без активного статуса одиночный clock-in не считается
	assert.Empty(t, PairShifts(records, false, now))
}

func TestPairShiftsMalformedPair(t *testing.T) {
	// два clock-in подряд: пара не образуется, но первый даёт открытую
	// смену, пока сотрудник числится на смене
	records := []TimeRecord{
		rec(1, ClockIn, at(10, 9, 0)),
		rec(1, ClockIn, at(10, 10, 0)),
	}
	shifts := PairShifts(records, true, at(10, 12, 0))
	require.Len(t, shifts, 1)
	assert.InDelta(t, 3, shifts[0].Hours, 1e-9)

	assert.Empty(t, PairShifts(records, false, at(10, 12, 0)))
}

func TestSplitOvertime(t *testing.T) {
	tests := []struct {
		hours        float64
		wantRegular  float64
		wantOvertime float64
	}{
		{0, 0, 0},
		{6, 6, 0},
		{8, 8, 0},
		{8.5, 8, 0.5},
		{12, 8, 4},
	}
	for _, tc := range tests {
		regular, overtime := SplitOvertime(tc.hours)
		assert.InDelta(t, tc.wantRegular, regular, 1e-9)
		assert.InDelta(t, tc.wantOvertime, overtime, 1e-9)
	}
}

func TestPay(t *testing.T) {
	rate := decimal.NewFromInt(100)
	// 8 часов по ставке + 0.5 часа с коэффициентом 1.5
	pay := Pay(rate, 8, 0.5)
	assert.Equal(t, "875", pay.String())
}

func TestSummarizePeriod(t *testing.T) {
	emps := []Employee{
		{ID: 1, Name: "Ana", HourlyRate: decimal.NewFromInt(100)},
		{ID: 2, Name: "Ben", HourlyRate: decimal.NewFromInt(50)},
	}
	records := []TimeRecord{
		// Ana: 9.5 часов в один день → 8 обычных + 1.5 сверхурочных
		rec(1, ClockIn, at(10, 8, 0)),
		rec(1, ClockOut, at(10, 17, 30)),
		// Ben: 4 часа
		rec(2, ClockIn, at(10, 9, 0)),
		rec(2, ClockOut, at(10, 13, 0)),
		// вне периода
		rec(1, ClockIn, at(20, 9, 0)),
		rec(1, ClockOut, at(20, 17, 0)),
	}
	start := at(10, 0, 0)
	end := at(11, 23, 59)

	s := SummarizePeriod(emps, records, start, end)
	assert.Equal(t, 2, s.EmployeeCount)
	assert.InDelta(t, 12, s.RegularHours, 1e-9)
	assert.InDelta(t, 1.5, s.OvertimeHours, 1e-9)
	assert.Equal(t, "1000", s.RegularPay.String())  // 8×100 + 4×50
	assert.Equal(t, "225", s.OvertimePay.String())  // 1.5×100×1.5
	assert.Equal(t, "1225", s.TotalPay().String())
}

func TestSummarizePeriodIgnoresOpenShifts(t *testing.T) {
	emps := []Employee{{ID: 1, HourlyRate: decimal.NewFromInt(100), IsClockedIn: true}}
	records := []TimeRecord{rec(1, ClockIn, at(10, 9, 0))}

	s := SummarizePeriod(emps, records, at(10, 0, 0), at(10, 23, 59))
	assert.InDelta(t, 0, s.RegularHours, 1e-9)
	assert.True(t, s.TotalPay().IsZero())
}

func TestSummarizePeriodShiftAcrossMidnightDoesNotPair(t *testing.T) {
	emps := []Employee{{ID: 1, HourlyRate: decimal.NewFromInt(100)}}
	records := []TimeRecord{
		rec(1, ClockIn, at(10, 22, 0)),
		rec(1, ClockOut, at(11, 6, 0)),
	}
	s := SummarizePeriod(emps, records, at(10, 0, 0), at(11, 23, 59))
	// записи попадают в разные календарные дни и парой не становятся
	assert.InDelta(t, 0, s.RegularHours+s.OvertimeHours, 1e-9)
}

func TestDashboard(t *testing.T) {
	now := at(10, 13, 0)
	emps := []Employee{
		{ID: 1, HourlyRate: decimal.NewFromInt(100), IsClockedIn: true},
		{ID: 2, HourlyRate: decimal.NewFromInt(50)},
	}
	records := []TimeRecord{
		rec(1, ClockIn, at(10, 9, 0)), // открытая смена, 4 часа к 13:00
		rec(2, ClockIn, at(10, 8, 0)),
		rec(2, ClockOut, at(10, 12, 0)),
		rec(2, ClockIn, at(9, 8, 0)), // вчерашняя запись не в счёт
		rec(2, ClockOut, at(9, 12, 0)),
	}
	stats := Dashboard(emps, records, now)
	assert.Equal(t, 1, stats.ActiveEmployees)
	assert.InDelta(t, 8, stats.TotalHoursToday, 1e-9)
	assert.Equal(t, "600", stats.PayrollDue.String()) // 4×100 + 4×50
}

func TestTodayShifts(t *testing.T) {
	now := at(10, 18, 0)
	emp := Employee{ID: 1}
	records := []TimeRecord{
		rec(1, ClockIn, at(10, 9, 0)),
		rec(1, ClockOut, at(10, 12, 0)),
		rec(1, ClockIn, at(10, 13, 0)),
		rec(1, ClockOut, at(10, 17, 0)),
		rec(1, ClockIn, at(9, 9, 0)), // вчера
		rec(1, ClockOut, at(9, 17, 0)),
	}
	shifts := TodayShifts(emp, records, now)
	require.Len(t, shifts, 2)
	assert.InDelta(t, 7, TotalHours(shifts), 1e-9)
}
