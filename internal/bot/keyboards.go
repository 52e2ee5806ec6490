package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/whiplash-bot/internal/domain/finance"
	"github.com/Spok95/whiplash-bot/internal/domain/inventory"
	"github.com/Spok95/whiplash-bot/internal/domain/payroll"
	"github.com/Spok95/whiplash-bot/internal/domain/period"
)

const (
	btnFinance   = "📒 Finance"
	btnInventory = "📦 Inventory"
	btnPayroll   = "🕒 Payroll"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnFinance),
			tgbotapi.NewKeyboardButton(btnInventory),
			tgbotapi.NewKeyboardButton(btnPayroll),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func navRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", "nav:cancel"),
	)
}

func navKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(navRow())
}

func financeMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add record", "fin:add"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Summary & report", "fin:sum"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear all records", "fin:clear"),
		),
	)
}

func todayKeyboard(data string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", data),
		),
		navRow(),
	)
}

func recordTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Income", "fin:type:income"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Expense", "fin:type:expense"),
		),
		navRow(),
	)
}

func categoryKeyboard(t finance.RecordType) tgbotapi.InlineKeyboardMarkup {
	cats := finance.ExpenseCategories
	if t == finance.TypeIncome {
		cats = finance.IncomeCategories
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cats)+1)
	for _, c := range cats {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c, "fin:cat:"+c),
		))
	}
	rows = append(rows, navRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func vatKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ No VAT", "fin:vat:skip"),
		),
		navRow(),
	)
}

func periodKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 5)
	for _, p := range []period.Period{period.Daily, period.Weekly, period.Monthly, period.Yearly} {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Title(), "fin:period:"+string(p)),
		))
	}
	rows = append(rows, navRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard(yesData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes", yesData),
			tgbotapi.NewInlineKeyboardButtonData("✖️ No", "nav:cancel"),
		),
	)
}

func summaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Export report", "fin:export"),
		),
		navRow(),
	)
}

func invDateKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", "inv:date:today"),
			tgbotapi.NewInlineKeyboardButtonData("🗂 All rows", "inv:date:all"),
		),
		navRow(),
	)
}

func invListKeyboard(entries []inventory.Entry) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entries)+2)
	for _, e := range entries {
		label := fmt.Sprintf("%s — %s", e.Row.Date, inventory.CategoryLabel(e.Row.Category))
		switch e.Row.Status {
		case inventory.StatusLow:
			label += " 🟡"
		case inventory.StatusOut:
			label += " 🔴"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "inv:row:"+strconv.Itoa(e.Index)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add row", "inv:new"),
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Report", "inv:export"),
		),
		navRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func invRowKeyboard(idx int) tgbotapi.InlineKeyboardMarkup {
	i := strconv.Itoa(idx)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Date", "inv:edit:"+i+":date"),
			tgbotapi.NewInlineKeyboardButtonData("🏷 Category", "inv:cat:"+i),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💲 Price", "inv:edit:"+i+":price"),
			tgbotapi.NewInlineKeyboardButtonData("📦 Stock", "inv:edit:"+i+":stock"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Reorder", "inv:edit:"+i+":reorder"),
			tgbotapi.NewInlineKeyboardButtonData("📉 Used", "inv:edit:"+i+":used"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Remarks", "inv:edit:"+i+":remarks"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", "inv:del:"+i),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to list", "inv:back"),
		),
	)
}

func invCategoryKeyboard(idx int, custom []string) tgbotapi.InlineKeyboardMarkup {
	i := strconv.Itoa(idx)
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(custom)+4)
	for _, c := range inventory.PredefinedCategories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(inventory.CategoryLabel(c), "inv:catv:"+i+":"+c),
		))
	}
	for _, c := range custom {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c, "inv:catv:"+i+":"+c),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Other…", "inv:catother:"+i),
		),
		navRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func payrollMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Employees", "pay:emps"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", "pay:dash"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧮 Calculate payroll", "pay:calc"),
		),
	)
}

func employeeListKeyboard(emps []payroll.Employee) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(emps)+2)
	for _, e := range emps {
		label := fmt.Sprintf("%s — %s", e.Name, e.Position)
		if e.IsClockedIn {
			label = "🟢 " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "pay:emp:"+strconv.FormatInt(e.ID, 10)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add employee", "pay:add"),
		),
		navRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func employeeCardKeyboard(e payroll.Employee) tgbotapi.InlineKeyboardMarkup {
	id := strconv.FormatInt(e.ID, 10)
	clock := tgbotapi.NewInlineKeyboardButtonData("🟢 Clock in", "pay:in:"+id)
	if e.IsClockedIn {
		clock = tgbotapi.NewInlineKeyboardButtonData("🔴 Clock out", "pay:out:"+id)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			clock,
			tgbotapi.NewInlineKeyboardButtonData("⏱ Today", "pay:status:"+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit", "pay:edit:"+id),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", "pay:del:"+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to list", "pay:emps"),
		),
	)
}

func payResultsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Export summary", "pay:export"),
		),
		navRow(),
	)
}
