package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/whiplash-bot/internal/dialog"
	"github.com/Spok95/whiplash-bot/internal/domain/money"
	"github.com/Spok95/whiplash-bot/internal/domain/payroll"
	"github.com/Spok95/whiplash-bot/internal/domain/period"
	"github.com/Spok95/whiplash-bot/internal/infra/metrics"
	"github.com/Spok95/whiplash-bot/internal/report"
)

func (b *Bot) payrollCallback(ctx context.Context, chatID int64, data string) {
	switch {
	case data == "emps":
		b.showEmployeeList(ctx, chatID)
	case data == "dash":
		b.showPayrollDashboard(chatID)
	case data == "calc":
		_ = b.states.Set(ctx, chatID, dialog.StatePayPeriodStart, dialog.Payload{})
		b.sendWithKeyboard(chatID, "Pay period start (YYYY-MM-DD):", navKeyboard())
	case data == "export":
		b.payExport(ctx, chatID)
	case data == "add":
		_ = b.states.Set(ctx, chatID, dialog.StatePayAddName, dialog.Payload{})
		b.sendWithKeyboard(chatID, "New employee name:", navKeyboard())
	case strings.HasPrefix(data, "emp:"):
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "emp:"), 10, 64); err == nil {
			b.showEmployeeCard(ctx, chatID, id)
		}
	case strings.HasPrefix(data, "in:"):
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "in:"), 10, 64); err == nil {
			b.payClock(ctx, chatID, id, payroll.ClockIn)
		}
	case strings.HasPrefix(data, "out:"):
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "out:"), 10, 64); err == nil {
			b.payClock(ctx, chatID, id, payroll.ClockOut)
		}
	case strings.HasPrefix(data, "status:"):
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "status:"), 10, 64); err == nil {
			b.showTodayStatus(chatID, id)
		}
	case strings.HasPrefix(data, "edit:"):
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "edit:"), 10, 64); err == nil {
			b.payStartEdit(ctx, chatID, id)
		}
	case strings.HasPrefix(data, "del:yes:"):
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "del:yes:"), 10, 64); err == nil {
			b.payDelete(ctx, chatID, id)
		}
	case strings.HasPrefix(data, "del:"):
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "del:"), 10, 64); err == nil {
			emp, ok := b.roster.Get(id)
			if !ok {
				return
			}
			_ = b.states.Set(ctx, chatID, dialog.StatePayDelete, dialog.Payload{"id": id})
			b.sendWithKeyboard(chatID,
				fmt.Sprintf("Remove %s and all their time records?", emp.Name),
				confirmKeyboard("pay:del:yes:"+strconv.FormatInt(id, 10)))
		}
	}
}

func (b *Bot) showEmployeeList(ctx context.Context, chatID int64) {
	emps := b.roster.Employees()
	_ = b.states.Set(ctx, chatID, dialog.StatePayEmpList, dialog.Payload{})
	text := "👥 Employees"
	if len(emps) == 0 {
		text += "\n\nNo employees yet — add the first one."
	}
	b.sendWithKeyboard(chatID, text, employeeListKeyboard(emps))
}

func (b *Bot) showEmployeeCard(ctx context.Context, chatID int64, id int64) {
	emp, ok := b.roster.Get(id)
	if !ok {
		b.sendText(chatID, "That employee no longer exists.")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StatePayEmpCard, dialog.Payload{"id": id})

	status := "⚪ clocked out"
	if emp.IsClockedIn {
		status = "🟢 clocked in"
	}
	text := fmt.Sprintf("👤 %s\nPosition: %s\nHourly rate: %s\nStatus: %s",
		emp.Name, emp.Position, money.Format(emp.HourlyRate), status)
	b.sendWithKeyboard(chatID, text, employeeCardKeyboard(emp))
}

func (b *Bot) payClock(ctx context.Context, chatID int64, id int64, action payroll.Action) {
	var (
		emp payroll.Employee
		err error
	)
	now := time.Now()
	if action == payroll.ClockIn {
		emp, err = b.roster.ClockInEmployee(ctx, id, now)
	} else {
		emp, err = b.roster.ClockOutEmployee(ctx, id, now)
	}
	if b.reportErr(chatID, err) {
		return
	}
	metrics.ClockActions.WithLabelValues(string(action)).Inc()
	verb := "clocked in"
	if action == payroll.ClockOut {
		verb = "clocked out"
	}
	b.sendText(chatID, fmt.Sprintf("⏱ %s has %s at %s.", emp.Name, verb, now.Format("03:04 PM")))
	b.showEmployeeCard(ctx, chatID, id)
}

func (b *Bot) showTodayStatus(chatID int64, id int64) {
	emp, ok := b.roster.Get(id)
	if !ok {
		return
	}
	now := time.Now()
	shifts := payroll.TodayShifts(emp, b.roster.TimeRecords(), now)

	var sb strings.Builder
	sb.WriteString("⏱ " + emp.Name + " — today\n\n")
	if len(shifts) == 0 {
		sb.WriteString("No shifts recorded today.\n")
	}
	for _, s := range shifts {
		if s.Out != nil {
			sb.WriteString(fmt.Sprintf("%s – %s  (%.2f h)\n",
				s.In.Format("03:04 PM"), s.Out.Format("03:04 PM"), s.Hours))
		} else {
			sb.WriteString(fmt.Sprintf("%s – now  (%.2f h, still clocked in)\n",
				s.In.Format("03:04 PM"), s.Hours))
		}
	}
	total := payroll.TotalHours(shifts)
	regular, overtime := payroll.SplitOvertime(total)
	sb.WriteString(fmt.Sprintf("\nTotal: %.2f h", total))
	if overtime > 0 {
		sb.WriteString(fmt.Sprintf(" (%.2f regular + %.2f overtime)", regular, overtime))
	}
	sb.WriteString("\nPay today: " + money.Format(payroll.Pay(emp.HourlyRate, regular, overtime)))
	b.sendText(chatID, sb.String())
}

func (b *Bot) showPayrollDashboard(chatID int64) {
	stats := b.roster.Dashboard(time.Now())
	b.sendText(chatID, fmt.Sprintf(
		"📊 Payroll dashboard\n\nClocked in now: %d\nHours worked today: %.1f\nPayroll due today: %s",
		stats.ActiveEmployees, stats.TotalHoursToday, money.Format(stats.PayrollDue)))
}

// --- добавление сотрудника ---

func (b *Bot) payAddName(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if text == "" {
		b.sendText(chatID, "⚠️ Name must not be empty.")
		return
	}
	st.Payload["name"] = text
	_ = b.states.Set(ctx, chatID, dialog.StatePayAddPosition, st.Payload)
	b.sendWithKeyboard(chatID, "Position:", navKeyboard())
}

func (b *Bot) payAddPosition(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if text == "" {
		b.sendText(chatID, "⚠️ Position must not be empty.")
		return
	}
	st.Payload["position"] = text
	_ = b.states.Set(ctx, chatID, dialog.StatePayAddRate, st.Payload)
	b.sendWithKeyboard(chatID,
		"Hourly rate (minimum "+money.Format(b.roster.MinimumWage())+"):", navKeyboard())
}

func (b *Bot) payAddRate(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	rate, err := money.ParseAmount(text)
	if err != nil {
		b.sendText(chatID, "⚠️ Please enter a valid hourly rate.")
		return
	}
	name, _ := dialog.GetString(st.Payload, "name")
	position, _ := dialog.GetString(st.Payload, "position")
	emp, err := b.roster.Add(ctx, name, position, rate)
	if b.reportErr(chatID, err) {
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.sendText(chatID, fmt.Sprintf("✅ %s added as new %s.", emp.Name, emp.Position))
	b.showEmployeeList(ctx, chatID)
}

// --- редактирование ---

func (b *Bot) payStartEdit(ctx context.Context, chatID int64, id int64) {
	emp, ok := b.roster.Get(id)
	if !ok {
		return
	}
	// пока смена открыта, карточку не трогаем
	if emp.IsClockedIn {
		b.sendText(chatID, "⚠️ Cannot edit an employee while they are clocked in.")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StatePayEditName, dialog.Payload{"id": id})
	b.sendWithKeyboard(chatID, "New name (current: "+emp.Name+"):", navKeyboard())
}

func (b *Bot) payEditName(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if text == "" {
		b.sendText(chatID, "⚠️ Name must not be empty.")
		return
	}
	st.Payload["name"] = text
	_ = b.states.Set(ctx, chatID, dialog.StatePayEditPos, st.Payload)
	b.sendWithKeyboard(chatID, "New position:", navKeyboard())
}

func (b *Bot) payEditPosition(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if text == "" {
		b.sendText(chatID, "⚠️ Position must not be empty.")
		return
	}
	st.Payload["position"] = text
	_ = b.states.Set(ctx, chatID, dialog.StatePayEditRate, st.Payload)
	b.sendWithKeyboard(chatID,
		"New hourly rate (minimum "+money.Format(b.roster.MinimumWage())+"):", navKeyboard())
}

func (b *Bot) payEditRate(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	rate, err := money.ParseAmount(text)
	if err != nil {
		b.sendText(chatID, "⚠️ Please enter a valid hourly rate.")
		return
	}
	id, _ := dialog.GetInt64(st.Payload, "id")
	name, _ := dialog.GetString(st.Payload, "name")
	position, _ := dialog.GetString(st.Payload, "position")
	emp, err := b.roster.Edit(ctx, id, name, position, rate)
	if b.reportErr(chatID, err) {
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.sendText(chatID, "✅ "+emp.Name+" updated.")
	b.showEmployeeCard(ctx, chatID, id)
}

func (b *Bot) payDelete(ctx context.Context, chatID int64, id int64) {
	emp, ok := b.roster.Get(id)
	if !ok {
		return
	}
	if b.reportErr(chatID, b.roster.Delete(ctx, id)) {
		return
	}
	b.sendText(chatID, "🗑 "+emp.Name+" removed from the system.")
	b.showEmployeeList(ctx, chatID)
}

// --- расчёт за период ---

func (b *Bot) payPeriodStart(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if _, ok := period.ParseDate(text); !ok {
		b.sendText(chatID, "⚠️ Please enter a valid date (YYYY-MM-DD).")
		return
	}
	st.Payload["start"] = text
	_ = b.states.Set(ctx, chatID, dialog.StatePayPeriodEnd, st.Payload)
	b.sendWithKeyboard(chatID, "Pay period end (YYYY-MM-DD):", navKeyboard())
}

func (b *Bot) payPeriodEnd(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if _, ok := period.ParseDate(text); !ok {
		b.sendText(chatID, "⚠️ Please enter a valid date (YYYY-MM-DD).")
		return
	}
	st.Payload["end"] = text
	b.showPayResults(ctx, chatID, st.Payload)
}

func (b *Bot) resolvePayPeriod(p dialog.Payload) (time.Time, time.Time, bool) {
	startRaw, _ := dialog.GetString(p, "start")
	endRaw, _ := dialog.GetString(p, "end")
	start, okS := period.ParseDate(startRaw)
	end, okE := period.ParseDate(endRaw)
	return start, end, okS && okE
}

func (b *Bot) showPayResults(ctx context.Context, chatID int64, payload dialog.Payload) {
	start, end, ok := b.resolvePayPeriod(payload)
	if !ok {
		return
	}
	sum, err := b.roster.CalculatePayroll(start, end)
	if b.reportErr(chatID, err) {
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StatePayResults, payload)

	text := fmt.Sprintf(
		"🧮 Payroll %s – %s\n\nEmployees: %d\nRegular hours: %.1f\nOvertime hours: %.1f\n\nRegular pay: %s\nOvertime pay: %s\nTotal pay: %s",
		start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"),
		sum.EmployeeCount, sum.RegularHours, sum.OvertimeHours,
		money.Format(sum.RegularPay), money.Format(sum.OvertimePay),
		money.Format(sum.TotalPay()))
	b.sendWithKeyboard(chatID, text, payResultsKeyboard())
}

func (b *Bot) payExport(ctx context.Context, chatID int64) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StatePayResults {
		b.sendText(chatID, "Calculate a pay period first, then export it.")
		return
	}
	start, end, ok := b.resolvePayPeriod(st.Payload)
	if !ok {
		return
	}
	sum, err := b.roster.CalculatePayroll(start, end)
	if b.reportErr(chatID, err) {
		return
	}

	rep := report.Report{
		Title: "Eomma's — Payroll Summary",
		Subtitles: []string{
			"Pay period: " + start.Format("Jan 2, 2006") + " – " + end.Format("Jan 2, 2006"),
			"Generated " + today(),
		},
		Header: []string{"Metric", "Value"},
		Rows:   payrollReportRows(sum, b.roster.Dashboard(time.Now())),
	}
	data, err := rep.Build()
	if err != nil {
		b.log.Error("payroll report build failed", "err", err)
		b.sendText(chatID, "Could not build the report, please try again.")
		return
	}
	metrics.ReportsExported.WithLabelValues("payroll").Inc()
	name := fmt.Sprintf("payroll_summary_%s_%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	b.sendDocument(chatID, name, data, "Payroll summary")
}

// payrollReportRows lays out the summary sheet: the calculated pay period
// block plus the live dashboard figures at the bottom.
func payrollReportRows(sum payroll.PeriodSummary, stats payroll.DashboardStats) [][]string {
	return [][]string{
		{"Employees", strconv.Itoa(sum.EmployeeCount)},
		{"Regular hours", fmt.Sprintf("%.1f", sum.RegularHours)},
		{"Overtime hours", fmt.Sprintf("%.1f", sum.OvertimeHours)},
		{"Regular pay", money.Format(sum.RegularPay)},
		{"Overtime pay", money.Format(sum.OvertimePay)},
		{"Total pay", money.Format(sum.TotalPay())},
		{"Total hours today", fmt.Sprintf("%.1f", stats.TotalHoursToday)},
		{"Payroll due", money.Format(stats.PayrollDue)},
	}
}
