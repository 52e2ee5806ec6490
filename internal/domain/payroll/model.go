package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Action string

const (
	ClockIn  Action = "clock-in"
	ClockOut Action = "clock-out"
)

type Employee struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Position    string          `json:"position"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	IsClockedIn bool            `json:"isClockedIn"`
}

// TimeRecord is append-only; pairing into shifts is by sequence order,
// there is no explicit in/out link.
type TimeRecord struct {
	EmployeeID int64     `json:"employeeId"`
	Action     Action    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}
