package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/whiplash-bot/internal/dialog"
)

const helpText = `What I can do:

📒 Finance — income and expense records, period summaries, Excel reports.
📦 Inventory — daily stock sheet with automatic low-stock tracking.
🕒 Payroll — employees, clock in/out, overtime and pay period totals.

Pick a section from the keyboard below.`

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	chatID := msg.Chat.ID
	if chatID != b.adminChat {
		b.sendText(chatID, "This bot is private.")
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			_ = b.states.Reset(ctx, chatID)
			m := tgbotapi.NewMessage(chatID, "👋 Welcome back!\n\n"+helpText)
			m.ReplyMarkup = mainKeyboard()
			b.send(m)
		case "help":
			b.sendText(chatID, helpText)
		case "summary":
			b.SendDailySummary(ctx)
		default:
			b.sendText(chatID, "Unknown command. Try /help.")
		}
		return
	}

	switch msg.Text {
	case btnFinance:
		_ = b.states.Reset(ctx, chatID)
		b.sendWithKeyboard(chatID, "📒 Finance", financeMenuKeyboard())
		return
	case btnInventory:
		b.askInventoryDate(ctx, chatID)
		return
	case btnPayroll:
		_ = b.states.Reset(ctx, chatID)
		b.sendWithKeyboard(chatID, "🕒 Payroll", payrollMenuKeyboard())
		return
	}

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("dialog state load failed", "err", err)
		st = &dialog.Item{State: dialog.StateIdle, Payload: dialog.Payload{}}
	}
	text := strings.TrimSpace(msg.Text)

	switch st.State {
	// финансы
	case dialog.StateFinDate:
		b.finDateEntered(ctx, chatID, st, text)
	case dialog.StateFinCustomCat:
		b.finCustomCategory(ctx, chatID, st, text)
	case dialog.StateFinAmount:
		b.finAmountEntered(ctx, chatID, st, text)
	case dialog.StateFinVat:
		b.finVatEntered(ctx, chatID, st, text)
	case dialog.StateFinAnchorDate:
		b.finAnchorDate(ctx, chatID, st, text)
	case dialog.StateFinAnchorMonth:
		b.finAnchorMonth(ctx, chatID, st, text)
	case dialog.StateFinAnchorYear:
		b.finAnchorYear(ctx, chatID, st, text)

	// инвентарь
	case dialog.StateInvDate:
		b.invDateEntered(ctx, chatID, st, text)
	case dialog.StateInvEdit:
		b.invFieldEntered(ctx, chatID, st, text)
	case dialog.StateInvCustomCat:
		b.invCustomCategory(ctx, chatID, st, text)

	// сотрудники
	case dialog.StatePayAddName:
		b.payAddName(ctx, chatID, st, text)
	case dialog.StatePayAddPosition:
		b.payAddPosition(ctx, chatID, st, text)
	case dialog.StatePayAddRate:
		b.payAddRate(ctx, chatID, st, text)
	case dialog.StatePayEditName:
		b.payEditName(ctx, chatID, st, text)
	case dialog.StatePayEditPos:
		b.payEditPosition(ctx, chatID, st, text)
	case dialog.StatePayEditRate:
		b.payEditRate(ctx, chatID, st, text)
	case dialog.StatePayPeriodStart:
		b.payPeriodStart(ctx, chatID, st, text)
	case dialog.StatePayPeriodEnd:
		b.payPeriodEnd(ctx, chatID, st, text)

	default:
		b.sendText(chatID, "Pick a section from the keyboard, or send /help.")
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	if chatID != b.adminChat {
		b.answerCallback(cb, "This bot is private.", true)
		return
	}
	b.answerCallback(cb, "", false)

	data := cb.Data
	switch {
	case data == "nav:cancel":
		_ = b.states.Reset(ctx, chatID)
		b.sendText(chatID, "Cancelled.")
	case strings.HasPrefix(data, "fin:"):
		b.financeCallback(ctx, chatID, strings.TrimPrefix(data, "fin:"))
	case strings.HasPrefix(data, "inv:"):
		b.inventoryCallback(ctx, chatID, strings.TrimPrefix(data, "inv:"))
	case strings.HasPrefix(data, "pay:"):
		b.payrollCallback(ctx, chatID, strings.TrimPrefix(data, "pay:"))
	default:
		b.log.Warn("unknown callback", "data", data)
	}
}
