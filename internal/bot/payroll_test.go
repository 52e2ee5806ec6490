package bot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/whiplash-bot/internal/domain/payroll"
)

func TestPayrollReportRows(t *testing.T) {
	sum := payroll.PeriodSummary{
		RegularHours:  12,
		OvertimeHours: 1.5,
		RegularPay:    decimal.NewFromInt(1000),
		OvertimePay:   decimal.NewFromInt(225),
		EmployeeCount: 2,
	}
	stats := payroll.DashboardStats{
		ActiveEmployees: 1,
		TotalHoursToday: 4,
		PayrollDue:      decimal.NewFromInt(400),
	}

	rows := payrollReportRows(sum, stats)
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"Employees", "2"}, rows[0])
	assert.Equal(t, []string{"Regular hours", "12.0"}, rows[1])
	assert.Equal(t, []string{"Overtime hours", "1.5"}, rows[2])
	assert.Equal(t, []string{"Regular pay", "₱1,000.00"}, rows[3])
	assert.Equal(t, []string{"Overtime pay", "₱225.00"}, rows[4])
	assert.Equal(t, []string{"Total pay", "₱1,225.00"}, rows[5])
	// живые показатели дашборда идут после расчётного блока
	assert.Equal(t, []string{"Total hours today", "4.0"}, rows[6])
	assert.Equal(t, []string{"Payroll due", "₱400.00"}, rows[7])
}
