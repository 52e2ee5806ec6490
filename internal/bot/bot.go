package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/whiplash-bot/internal/dialog"
	"github.com/Spok95/whiplash-bot/internal/domain/finance"
	"github.com/Spok95/whiplash-bot/internal/domain/inventory"
	"github.com/Spok95/whiplash-bot/internal/domain/money"
	"github.com/Spok95/whiplash-bot/internal/domain/payroll"
	"github.com/Spok95/whiplash-bot/internal/fault"
	"github.com/Spok95/whiplash-bot/internal/infra/metrics"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	states    *dialog.Repo
	adminChat int64

	ledger *finance.Ledger
	sheet  *inventory.Sheet
	roster *payroll.Roster
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, statesRepo *dialog.Repo,
	adminChatID int64, ledger *finance.Ledger, sheet *inventory.Sheet,
	roster *payroll.Roster) *Bot {

	return &Bot{
		api: api, log: log, states: statesRepo, adminChat: adminChatID,
		ledger: ledger, sheet: sheet, roster: roster,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	b.send(m)
}

func (b *Bot) sendDocument(chatID int64, name string, data []byte, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	b.send(doc)
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	if _, err := b.api.Request(resp); err != nil {
		b.log.Error("answer callback failed", "err", err)
	}
}

// reportErr maps the error classes to user feedback: validation blocks
// the operation, persistence only warns (the session state is already
// updated), anything else gets a generic message.
// Returns true when the operation must be treated as aborted.
func (b *Bot) reportErr(chatID int64, err error) bool {
	switch {
	case err == nil:
		return false
	case fault.IsPersistence(err):
		metrics.PersistenceFailures.Inc()
		b.sendText(chatID, "⚠️ Data could not be saved. Storage might be full or unavailable. Changes are kept for this session only.")
		return false
	case fault.IsValidation(err):
		b.sendText(chatID, "⚠️ "+capitalize(fault.Message(err)))
		return true
	default:
		b.log.Error("operation failed", "err", err)
		b.sendText(chatID, "Something went wrong, please try again.")
		return true
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func today() string { return time.Now().Format("2006-01-02") }

// SendDailySummary is the scheduled digest for the admin chat: today's
// net result, the payroll dashboard and anything flagged for reorder.
func (b *Bot) SendDailySummary(_ context.Context) {
	now := time.Now()
	var sb strings.Builder
	sb.WriteString("📋 Daily summary — " + now.Format("Jan 2, 2006") + "\n\n")
	sb.WriteString("Net profit today: " + money.Format(b.ledger.TodayNetProfit(now)) + "\n")

	stats := b.roster.Dashboard(now)
	sb.WriteString(fmt.Sprintf("Hours worked today: %.1f\n", stats.TotalHoursToday))
	sb.WriteString("Payroll due: " + money.Format(stats.PayrollDue) + "\n")
	sb.WriteString(fmt.Sprintf("Currently clocked in: %d\n", stats.ActiveEmployees))

	if reorder := b.sheet.ReorderNeeded(); len(reorder) > 0 {
		sb.WriteString("\n⚠️ Needs reorder:\n")
		for _, r := range reorder {
			sb.WriteString(fmt.Sprintf("— %s (%s): ending %s\n",
				inventory.CategoryLabel(r.Category), r.Date, r.Ending))
		}
	}
	b.sendText(b.adminChat, sb.String())
}

// notifyReorder pings the admin chat when an edit pushes a row into the
// low or out-of-stock band, the same way stock alerts always worked.
func (b *Bot) notifyReorder(row inventory.Row) {
	switch row.Status {
	case inventory.StatusOut:
		b.sendText(b.adminChat, fmt.Sprintf("⚠️ %s (%s): out of stock — ending %s, reorder needed.",
			inventory.CategoryLabel(row.Category), row.Date, row.Ending))
	case inventory.StatusLow:
		b.sendText(b.adminChat, fmt.Sprintf("⚠️ %s (%s): low stock — ending %s.",
			inventory.CategoryLabel(row.Category), row.Date, row.Ending))
	}
}
