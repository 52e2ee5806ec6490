package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/whiplash-bot/internal/domain/period"
)

const (
	// Hours beyond this per calendar day are overtime.
	OvertimeThresholdHours = 8.0
	overtimeMultiplier     = 1.5
)

// Shift is a paired clock-in/clock-out, or an open clock-in when Out is
// nil (valued up to "now" at pairing time).
type Shift struct {
	In    time.Time
	Out   *time.Time
	Hours float64
}

// PairShifts pairs one employee's records strictly by position: 0 with 1,
// 2 with 3, and so on. A pair counts only when the actions are in/out in
// order. When the even-position record is a clock-in that has no valid
// partner, it contributes an open shift to now, but only while the
// employee is currently clocked in. Out-of-order sequences are taken as
// stored; this mirrors how the records were always interpreted.
// Callers pass records already limited to one employee; sorting is done
// here.
func PairShifts(records []TimeRecord, clockedIn bool, now time.Time) []Shift {
	recs := make([]TimeRecord, len(records))
	copy(recs, records)
	sort.Slice(recs, func(i, j int) bool { return recs[i].Timestamp.Before(recs[j].Timestamp) })

	shifts := []Shift{}
	for i := 0; i < len(recs); i += 2 {
		in := recs[i]
		if i+1 < len(recs) {
			out := recs[i+1]
			if in.Action == ClockIn && out.Action == ClockOut {
				shifts = append(shifts, Shift{
					In:    in.Timestamp,
					Out:   &out.Timestamp,
					Hours: out.Timestamp.Sub(in.Timestamp).Hours(),
				})
				continue
			}
		}
		if in.Action == ClockIn && clockedIn {
			shifts = append(shifts, Shift{
				In:    in.Timestamp,
				Hours: now.Sub(in.Timestamp).Hours(),
			})
		}
	}
	return shifts
}

func TotalHours(shifts []Shift) float64 {
	var total float64
	for _, s := range shifts {
		total += s.Hours
	}
	return total
}

// SplitOvertime applies the daily overtime rule.
func SplitOvertime(dailyHours float64) (regular, overtime float64) {
	regular = dailyHours
	if regular > OvertimeThresholdHours {
		regular = OvertimeThresholdHours
	}
	overtime = dailyHours - OvertimeThresholdHours
	if overtime < 0 {
		overtime = 0
	}
	return regular, overtime
}

// Pay values regular and overtime hours at the employee's rate, overtime
// at 1.5x.
func Pay(rate decimal.Decimal, regular, overtime float64) decimal.Decimal {
	regularPay := rate.Mul(decimal.NewFromFloat(regular))
	overtimePay := rate.Mul(decimal.NewFromFloat(overtime)).Mul(decimal.NewFromFloat(overtimeMultiplier))
	return regularPay.Add(overtimePay)
}

// bucketByDay groups records by the local calendar date of their
// timestamp. Pairing happens within each bucket, so a shift crossing
// midnight never pairs.
func bucketByDay(records []TimeRecord) map[string][]TimeRecord {
	buckets := map[string][]TimeRecord{}
	for _, r := range records {
		k := period.DayKey(r.Timestamp)
		buckets[k] = append(buckets[k], r)
	}
	return buckets
}

// PeriodSummary is the calculated payroll over a pay period.
type PeriodSummary struct {
	RegularHours  float64
	OvertimeHours float64
	RegularPay    decimal.Decimal
	OvertimePay   decimal.Decimal
	EmployeeCount int
}

func (s PeriodSummary) TotalPay() decimal.Decimal {
	return s.RegularPay.Add(s.OvertimePay)
}

// SummarizePeriod runs payroll over an inclusive interval of instants.
// Callers extend the end date to its last instant (period.EndOfDay) so
// clock-outs anywhere on the final day are included. Only complete pairs
// count here; open shifts are a dashboard concern.
func SummarizePeriod(employees []Employee, records []TimeRecord, start, end time.Time) PeriodSummary {
	s := PeriodSummary{EmployeeCount: len(employees)}
	for _, emp := range employees {
		inRange := []TimeRecord{}
		for _, r := range records {
			if r.EmployeeID != emp.ID {
				continue
			}
			if r.Timestamp.Before(start) || r.Timestamp.After(end) {
				continue
			}
			inRange = append(inRange, r)
		}
		for _, dayRecords := range bucketByDay(inRange) {
			daily := TotalHours(PairShifts(dayRecords, false, time.Time{}))
			regular, overtime := SplitOvertime(daily)
			s.RegularHours += regular
			s.OvertimeHours += overtime
			s.RegularPay = s.RegularPay.Add(emp.HourlyRate.Mul(decimal.NewFromFloat(regular)))
			s.OvertimePay = s.OvertimePay.Add(
				emp.HourlyRate.Mul(decimal.NewFromFloat(overtime)).Mul(decimal.NewFromFloat(overtimeMultiplier)))
		}
	}
	return s
}

// DashboardStats is the live view: who is in, hours worked today
// (open shifts valued up to now) and the pay those hours are worth.
type DashboardStats struct {
	ActiveEmployees int
	TotalHoursToday float64
	PayrollDue      decimal.Decimal
}

func Dashboard(employees []Employee, records []TimeRecord, now time.Time) DashboardStats {
	var stats DashboardStats
	for _, emp := range employees {
		if emp.IsClockedIn {
			stats.ActiveEmployees++
		}
		todays := []TimeRecord{}
		for _, r := range records {
			if r.EmployeeID == emp.ID && period.SameDay(r.Timestamp, now) {
				todays = append(todays, r)
			}
		}
		hours := TotalHours(PairShifts(todays, emp.IsClockedIn, now))
		stats.TotalHoursToday += hours
		regular, overtime := SplitOvertime(hours)
		stats.PayrollDue = stats.PayrollDue.Add(Pay(emp.HourlyRate, regular, overtime))
	}
	return stats
}

// TodayShifts lists one employee's shifts for the current day, open shift
// included, for the status view.
func TodayShifts(emp Employee, records []TimeRecord, now time.Time) []Shift {
	todays := []TimeRecord{}
	for _, r := range records {
		if r.EmployeeID == emp.ID && period.SameDay(r.Timestamp, now) {
			todays = append(todays, r)
		}
	}
	return PairShifts(todays, emp.IsClockedIn, now)
}
