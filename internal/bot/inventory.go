package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/whiplash-bot/internal/dialog"
	"github.com/Spok95/whiplash-bot/internal/domain/inventory"
	"github.com/Spok95/whiplash-bot/internal/domain/money"
	"github.com/Spok95/whiplash-bot/internal/domain/period"
	"github.com/Spok95/whiplash-bot/internal/infra/metrics"
	"github.com/Spok95/whiplash-bot/internal/report"
)

func (b *Bot) askInventoryDate(ctx context.Context, chatID int64) {
	_ = b.states.Set(ctx, chatID, dialog.StateInvDate, dialog.Payload{})
	b.sendWithKeyboard(chatID, "📦 Inventory date (YYYY-MM-DD):", invDateKeyboard())
}

func (b *Bot) inventoryCallback(ctx context.Context, chatID int64, data string) {
	switch {
	case data == "date:today":
		b.showInventoryList(ctx, chatID, today())
	case data == "date:all":
		b.showInventoryList(ctx, chatID, "")
	case data == "back":
		st, err := b.states.Get(ctx, chatID)
		if err != nil {
			return
		}
		date, _ := dialog.GetString(st.Payload, "date")
		b.showInventoryList(ctx, chatID, date)
	case data == "new":
		b.invAddRow(ctx, chatID)
	case data == "export":
		b.invExport(chatID)
	case strings.HasPrefix(data, "row:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "row:"))
		if err != nil {
			return
		}
		b.showInventoryRow(ctx, chatID, idx)
	case strings.HasPrefix(data, "edit:"):
		b.invAskField(ctx, chatID, strings.TrimPrefix(data, "edit:"))
	case strings.HasPrefix(data, "catother:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "catother:"))
		if err != nil {
			return
		}
		st, err := b.states.Get(ctx, chatID)
		if err != nil {
			return
		}
		st.Payload["idx"] = idx
		_ = b.states.Set(ctx, chatID, dialog.StateInvCustomCat, st.Payload)
		b.sendWithKeyboard(chatID, "Enter the category name (at least 3 characters):", navKeyboard())
	case strings.HasPrefix(data, "catv:"):
		b.invCategoryPicked(ctx, chatID, strings.TrimPrefix(data, "catv:"))
	case strings.HasPrefix(data, "cat:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "cat:"))
		if err != nil {
			return
		}
		st, err := b.states.Get(ctx, chatID)
		if err != nil {
			return
		}
		st.Payload["idx"] = idx
		_ = b.states.Set(ctx, chatID, dialog.StateInvCategory, st.Payload)
		b.sendWithKeyboard(chatID, "Pick a category:", invCategoryKeyboard(idx, b.sheet.CustomCategories()))
	case strings.HasPrefix(data, "del:yes:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "del:yes:"))
		if err != nil {
			return
		}
		b.invDeleteRow(ctx, chatID, idx)
	case strings.HasPrefix(data, "del:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "del:"))
		if err != nil {
			return
		}
		st, err := b.states.Get(ctx, chatID)
		if err != nil {
			return
		}
		_ = b.states.Set(ctx, chatID, dialog.StateInvDelete, st.Payload)
		b.sendWithKeyboard(chatID, "Delete this inventory row?", confirmKeyboard("inv:del:yes:"+strconv.Itoa(idx)))
	}
}

func (b *Bot) invDateEntered(ctx context.Context, chatID int64, _ *dialog.Item, text string) {
	if text != "" {
		if _, ok := period.ParseDate(text); !ok {
			b.sendText(chatID, "⚠️ Please enter a valid date (YYYY-MM-DD).")
			return
		}
	}
	b.showInventoryList(ctx, chatID, text)
}

// showInventoryList renders the sheet for a date; filtering by a date
// with no rows creates a blank row for it, same as the paper sheet
// always having a line for the day.
func (b *Bot) showInventoryList(ctx context.Context, chatID int64, date string) {
	entries, err := b.sheet.FilterByDate(ctx, date)
	if b.reportErr(chatID, err) {
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateInvList, dialog.Payload{"date": date})

	title := "📦 Inventory — all rows"
	if date != "" {
		title = "📦 Inventory — " + date
	}
	b.sendWithKeyboard(chatID, title+"\nPick a row to view or edit.", invListKeyboard(entries))
}

func (b *Bot) showInventoryRow(ctx context.Context, chatID int64, idx int) {
	row, ok := b.sheet.Row(idx)
	if !ok {
		b.sendText(chatID, "That row no longer exists.")
		return
	}
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		st = &dialog.Item{Payload: dialog.Payload{}}
	}
	st.Payload["idx"] = idx
	_ = b.states.Set(ctx, chatID, dialog.StateInvRow, st.Payload)

	var sb strings.Builder
	sb.WriteString("📦 " + row.Date + " — " + inventory.CategoryLabel(row.Category) + "\n\n")
	sb.WriteString("Price: " + money.Format(row.Price) + "\n")
	sb.WriteString(fmt.Sprintf("Stock: %d   Reorder: %d   Used: %d\n",
		row.QuantityStock, row.QuantityReorder, row.QuantityUsed))
	sb.WriteString("Inventory value: " + money.Format(row.InventoryValue) + "\n")
	if row.Ending != "" {
		sb.WriteString("Ending stock: " + row.Ending + "\n")
		sb.WriteString("Need reorder: " + row.NeedReorder + "\n")
	}
	switch row.Status {
	case inventory.StatusLow:
		sb.WriteString("Status: 🟡 low stock\n")
	case inventory.StatusOut:
		sb.WriteString("Status: 🔴 out of stock\n")
	case inventory.StatusOK:
		sb.WriteString("Status: 🟢 ok\n")
	}
	if row.Remarks != "" {
		sb.WriteString("Remarks: " + row.Remarks + "\n")
	}
	b.sendWithKeyboard(chatID, sb.String(), invRowKeyboard(idx))
}

func (b *Bot) invAddRow(ctx context.Context, chatID int64) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		return
	}
	date, _ := dialog.GetString(st.Payload, "date")
	if date == "" {
		date = today()
	}
	entry, err := b.sheet.AddRow(ctx, date)
	if b.reportErr(chatID, err) {
		return
	}
	metrics.RecordsAdded.WithLabelValues("inventory").Inc()
	b.showInventoryRow(ctx, chatID, entry.Index)
}

func (b *Bot) invAskField(ctx context.Context, chatID int64, data string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return
	}
	field := parts[1]
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		return
	}
	st.Payload["idx"] = idx
	st.Payload["field"] = field
	_ = b.states.Set(ctx, chatID, dialog.StateInvEdit, st.Payload)

	prompts := map[string]string{
		"date":    "New date (YYYY-MM-DD):",
		"price":   "Unit price:",
		"stock":   "Quantity in stock:",
		"reorder": "Quantity on reorder:",
		"used":    "Quantity used:",
		"remarks": "Remarks:",
	}
	b.sendWithKeyboard(chatID, prompts[field], navKeyboard())
}

func (b *Bot) invFieldEntered(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	idx, _ := dialog.GetInt(st.Payload, "idx")
	field, _ := dialog.GetString(st.Payload, "field")

	row, err := b.sheet.SetField(ctx, idx, inventory.Field(field), text)
	if b.reportErr(chatID, err) {
		return
	}
	b.notifyReorder(row)
	b.showInventoryRow(ctx, chatID, idx)
}

func (b *Bot) invCategoryPicked(ctx context.Context, chatID int64, data string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return
	}
	row, err := b.sheet.SetCategory(ctx, idx, parts[1])
	if b.reportErr(chatID, err) {
		return
	}
	b.notifyReorder(row)
	b.showInventoryRow(ctx, chatID, idx)
}

func (b *Bot) invCustomCategory(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	idx, _ := dialog.GetInt(st.Payload, "idx")
	row, err := b.sheet.SetCategory(ctx, idx, text)
	if b.reportErr(chatID, err) {
		return
	}
	b.notifyReorder(row)
	b.showInventoryRow(ctx, chatID, idx)
}

func (b *Bot) invDeleteRow(ctx context.Context, chatID int64, idx int) {
	if b.reportErr(chatID, b.sheet.DeleteRow(ctx, idx)) {
		return
	}
	st, err := b.states.Get(ctx, chatID)
	var date string
	if err == nil {
		date, _ = dialog.GetString(st.Payload, "date")
	}
	b.sendText(chatID, "🗑 Row deleted.")
	b.showInventoryList(ctx, chatID, date)
}

// invExport renders the whole sheet; ending-stock cells are highlighted
// when the row sits in the low or out band.
func (b *Bot) invExport(chatID int64) {
	rows := b.sheet.Rows()
	body := make([][]string, 0, len(rows))
	styles := map[report.CellRef]report.Style{}
	for i, r := range rows {
		body = append(body, []string{
			r.Date,
			inventory.CategoryLabel(r.Category),
			money.Format(r.Price),
			strconv.Itoa(r.QuantityStock),
			strconv.Itoa(r.QuantityReorder),
			money.Format(r.InventoryValue),
			strconv.Itoa(r.QuantityUsed),
			r.Ending,
			r.NeedReorder,
			r.Remarks,
		})
		switch r.Status {
		case inventory.StatusLow:
			styles[report.CellRef{Row: i, Col: 7}] = report.Style{TextColor: "FFCC00", Bold: true}
		case inventory.StatusOut:
			styles[report.CellRef{Row: i, Col: 7}] = report.Style{TextColor: "FF0000", Bold: true}
		}
	}
	rep := report.Report{
		Title:     "Eomma's — Inventory Report",
		Subtitles: []string{"Generated " + today()},
		Header: []string{
			"Date", "Category", "Price", "Qty Stock", "Qty Reorder",
			"Inventory Value", "Qty Used", "Ending", "Need Reorder", "Remarks",
		},
		Rows:       body,
		CellStyles: styles,
	}
	data, err := rep.Build()
	if err != nil {
		b.log.Error("inventory report build failed", "err", err)
		b.sendText(chatID, "Could not build the report, please try again.")
		return
	}
	metrics.ReportsExported.WithLabelValues("inventory").Inc()
	b.sendDocument(chatID, "inventory_report.xlsx", data, "Inventory report")
}
