package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/whiplash-bot/internal/dialog"
	"github.com/Spok95/whiplash-bot/internal/domain/finance"
	"github.com/Spok95/whiplash-bot/internal/domain/money"
	"github.com/Spok95/whiplash-bot/internal/domain/period"
	"github.com/Spok95/whiplash-bot/internal/infra/metrics"
	"github.com/Spok95/whiplash-bot/internal/report"
)

func (b *Bot) financeCallback(ctx context.Context, chatID int64, data string) {
	switch {
	case data == "add":
		_ = b.states.Set(ctx, chatID, dialog.StateFinDate, dialog.Payload{})
		b.sendWithKeyboard(chatID, "Record date (YYYY-MM-DD):", todayKeyboard("fin:date:today"))
	case data == "date:today":
		st := &dialog.Item{State: dialog.StateFinDate, Payload: dialog.Payload{}}
		b.finDateEntered(ctx, chatID, st, today())
	case strings.HasPrefix(data, "type:"):
		b.finTypePicked(ctx, chatID, strings.TrimPrefix(data, "type:"))
	case strings.HasPrefix(data, "cat:"):
		b.finCategoryPicked(ctx, chatID, strings.TrimPrefix(data, "cat:"))
	case data == "vat:skip":
		st, err := b.states.Get(ctx, chatID)
		if err != nil || st.State != dialog.StateFinVat {
			return
		}
		b.finVatEntered(ctx, chatID, st, "0")
	case data == "sum":
		_ = b.states.Set(ctx, chatID, dialog.StateFinPeriod, dialog.Payload{})
		b.sendWithKeyboard(chatID, "Summary period:", periodKeyboard())
	case strings.HasPrefix(data, "period:"):
		b.finPeriodPicked(ctx, chatID, strings.TrimPrefix(data, "period:"))
	case data == "anchor:today":
		st, err := b.states.Get(ctx, chatID)
		if err != nil || st.State != dialog.StateFinAnchorDate {
			return
		}
		b.finAnchorDate(ctx, chatID, st, today())
	case data == "export":
		b.finExport(ctx, chatID)
	case data == "clear":
		_ = b.states.Set(ctx, chatID, dialog.StateFinClear, dialog.Payload{})
		b.sendWithKeyboard(chatID,
			fmt.Sprintf("Delete all %d financial records? This cannot be undone.", b.ledger.Len()),
			confirmKeyboard("fin:clear:yes"))
	case data == "clear:yes":
		_ = b.states.Reset(ctx, chatID)
		if b.reportErr(chatID, b.ledger.ClearAll(ctx)) {
			return
		}
		b.sendText(chatID, "🗑 All financial records cleared.")
	}
}

// --- добавление записи ---

func (b *Bot) finDateEntered(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if _, ok := period.ParseDate(text); !ok {
		b.sendText(chatID, "⚠️ Please select a valid date (YYYY-MM-DD).")
		return
	}
	st.Payload["date"] = text
	_ = b.states.Set(ctx, chatID, dialog.StateFinType, st.Payload)
	b.sendWithKeyboard(chatID, "Record type:", recordTypeKeyboard())
}

func (b *Bot) finTypePicked(ctx context.Context, chatID int64, typ string) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StateFinType {
		return
	}
	st.Payload["type"] = typ
	_ = b.states.Set(ctx, chatID, dialog.StateFinCategory, st.Payload)
	b.sendWithKeyboard(chatID, "Category:", categoryKeyboard(finance.RecordType(typ)))
}

func (b *Bot) finCategoryPicked(ctx context.Context, chatID int64, cat string) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StateFinCategory {
		return
	}
	if cat == finance.CategoryOthers {
		_ = b.states.Set(ctx, chatID, dialog.StateFinCustomCat, st.Payload)
		b.sendWithKeyboard(chatID, "Enter the category name:", navKeyboard())
		return
	}
	st.Payload["category"] = cat
	_ = b.states.Set(ctx, chatID, dialog.StateFinAmount, st.Payload)
	b.sendWithKeyboard(chatID, "Amount:", navKeyboard())
}

func (b *Bot) finCustomCategory(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if text == "" {
		b.sendText(chatID, "⚠️ Please select a category.")
		return
	}
	st.Payload["category"] = text
	_ = b.states.Set(ctx, chatID, dialog.StateFinAmount, st.Payload)
	b.sendWithKeyboard(chatID, "Amount:", navKeyboard())
}

func (b *Bot) finAmountEntered(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if _, err := money.ParseAmount(text); err != nil {
		b.sendText(chatID, "⚠️ Please enter a valid non-negative amount.")
		return
	}
	st.Payload["amount"] = text
	_ = b.states.Set(ctx, chatID, dialog.StateFinVat, st.Payload)
	b.sendWithKeyboard(chatID, "VAT / tax amount:", vatKeyboard())
}

func (b *Bot) finVatEntered(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	date, _ := dialog.GetString(st.Payload, "date")
	typ, _ := dialog.GetString(st.Payload, "type")
	cat, _ := dialog.GetString(st.Payload, "category")
	amount, _ := dialog.GetString(st.Payload, "amount")

	rec, err := b.ledger.Add(ctx, finance.AddInput{
		Date: date, Type: typ, Category: cat, Amount: amount, VatTax: text,
	})
	if b.reportErr(chatID, err) {
		return
	}
	metrics.RecordsAdded.WithLabelValues("finance").Inc()
	_ = b.states.Reset(ctx, chatID)

	icon := "💰"
	if rec.Type == finance.TypeExpense {
		icon = "💸"
	}
	b.sendWithKeyboard(chatID,
		fmt.Sprintf("%s Recorded %s of %s (%s) on %s.",
			icon, rec.Type, money.Format(rec.Amount), rec.Category, rec.Date),
		financeMenuKeyboard())
}

// --- сводка и отчёт ---

func (b *Bot) finPeriodPicked(ctx context.Context, chatID int64, raw string) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StateFinPeriod {
		return
	}
	p := period.Period(raw)
	if !p.Valid() {
		return
	}
	st.Payload["period"] = raw
	switch p {
	case period.Daily, period.Weekly:
		_ = b.states.Set(ctx, chatID, dialog.StateFinAnchorDate, st.Payload)
		b.sendWithKeyboard(chatID, "Anchor date (YYYY-MM-DD):", todayKeyboard("fin:anchor:today"))
	case period.Monthly:
		_ = b.states.Set(ctx, chatID, dialog.StateFinAnchorMonth, st.Payload)
		b.sendWithKeyboard(chatID, "Month (1–12):", navKeyboard())
	case period.Yearly:
		_ = b.states.Set(ctx, chatID, dialog.StateFinAnchorYear, st.Payload)
		b.sendWithKeyboard(chatID, "Year:", navKeyboard())
	}
}

func (b *Bot) finAnchorDate(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	st.Payload["day"] = text
	b.showFinanceSummary(ctx, chatID, st.Payload)
}

func (b *Bot) finAnchorMonth(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	st.Payload["month"] = text
	_ = b.states.Set(ctx, chatID, dialog.StateFinAnchorYear, st.Payload)
	b.sendWithKeyboard(chatID, "Year:", navKeyboard())
}

func (b *Bot) finAnchorYear(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	st.Payload["year"] = text
	b.showFinanceSummary(ctx, chatID, st.Payload)
}

func (b *Bot) resolveAnchor(p dialog.Payload) (period.Period, time.Time, bool) {
	raw, _ := dialog.GetString(p, "period")
	day, _ := dialog.GetString(p, "day")
	month, _ := dialog.GetString(p, "month")
	year, _ := dialog.GetString(p, "year")
	per := period.Period(raw)
	anchor, ok := period.Anchor(per, day, month, year)
	return per, anchor, ok
}

func (b *Bot) showFinanceSummary(ctx context.Context, chatID int64, payload dialog.Payload) {
	per, anchor, ok := b.resolveAnchor(payload)
	// некорректный якорь даёт пустую выборку, а не ошибку
	var records []finance.Record
	if ok {
		records = b.ledger.Filter(per, anchor)
	}
	sum := finance.Summarize(records)

	var sb strings.Builder
	sb.WriteString("📊 " + per.Title() + " summary")
	if ok {
		sb.WriteString(" — " + anchor.Format("Jan 2, 2006"))
	}
	sb.WriteString("\n\n")
	if len(records) == 0 {
		sb.WriteString("No records for this period.\n")
	} else {
		for _, r := range records {
			sign := "+"
			if r.Type == finance.TypeExpense {
				sign = "−"
			}
			sb.WriteString(fmt.Sprintf("%s  %s %s  (%s)\n",
				r.Date, sign, money.Format(r.Amount), r.Category))
		}
	}
	sb.WriteString(summaryTotals(sum))

	_ = b.states.Set(ctx, chatID, dialog.StateFinSummary, payload)
	b.sendWithKeyboard(chatID, sb.String(), summaryKeyboard())
}

// summaryTotals is the totals block under the record list; margin shows
// two decimal places.
func summaryTotals(sum finance.Summary) string {
	var sb strings.Builder
	sb.WriteString("\nIncome: " + money.Format(sum.TotalIncome))
	sb.WriteString("\nExpenses: " + money.Format(sum.TotalExpense))
	sb.WriteString("\nVAT/tax: " + money.Format(sum.TotalVat))
	sb.WriteString("\nNet profit: " + money.Format(sum.NetProfit))
	sb.WriteString(fmt.Sprintf("\nProfit margin: %s%%", sum.ProfitMargin.StringFixed(2)))
	return sb.String()
}

func (b *Bot) finExport(ctx context.Context, chatID int64) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StateFinSummary {
		b.sendText(chatID, "Open a summary first, then export it.")
		return
	}
	per, anchor, ok := b.resolveAnchor(st.Payload)
	var records []finance.Record
	if ok {
		records = b.ledger.Filter(per, anchor)
	}
	sum := finance.Summarize(records)

	rows := make([][]string, 0, len(records)+6)
	for _, r := range records {
		rows = append(rows, []string{
			r.Date, string(r.Type), r.Category,
			money.Format(r.Amount), money.Format(r.VatTax), money.Format(r.Net()),
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"", "", "Total income", money.Format(sum.TotalIncome), "", ""},
		[]string{"", "", "Total expenses", money.Format(sum.TotalExpense), "", ""},
		[]string{"", "", "Total VAT/tax", money.Format(sum.TotalVat), "", ""},
		[]string{"", "", "Net profit", money.Format(sum.NetProfit), "", ""},
	)

	subtitle := per.Title()
	if ok {
		subtitle += " — " + anchor.Format("Jan 2, 2006")
	}
	rep := report.Report{
		Title:     "Eomma's — Financial Report",
		Subtitles: []string{subtitle},
		Header:    []string{"Date", "Type", "Category", "Amount", "VAT/Tax", "Net"},
		Rows:      rows,
	}
	data, err := rep.Build()
	if err != nil {
		b.log.Error("financial report build failed", "err", err)
		b.sendText(chatID, "Could not build the report, please try again.")
		return
	}
	metrics.ReportsExported.WithLabelValues("finance").Inc()
	name := fmt.Sprintf("financial_report_%s.xlsx", per)
	if ok {
		name = fmt.Sprintf("financial_report_%s_%s.xlsx", per, anchor.Format("2006-01-02"))
	}
	b.sendDocument(chatID, name, data, per.Title()+" financial report")
}
