package dialog

type State string

const (
	StateIdle State = "idle"

	// Финансы: добавление записи
	StateFinDate      State = "fin_date"
	StateFinType      State = "fin_type"
	StateFinCategory  State = "fin_category"
	StateFinCustomCat State = "fin_custom_cat"
	StateFinAmount    State = "fin_amount"
	StateFinVat       State = "fin_vat"

	// Финансы: фильтр/сводка
	StateFinPeriod      State = "fin_period"
	StateFinAnchorDate  State = "fin_anchor_date"
	StateFinAnchorMonth State = "fin_anchor_month"
	StateFinAnchorYear  State = "fin_anchor_year"
	StateFinSummary     State = "fin_summary"
	StateFinClear       State = "fin_clear" // подтверждение полной очистки

	// Инвентарь
	StateInvDate      State = "inv_date"
	StateInvList      State = "inv_list"
	StateInvRow       State = "inv_row"
	StateInvEdit      State = "inv_edit" // ввод значения поля
	StateInvCategory  State = "inv_category"
	StateInvCustomCat State = "inv_custom_cat"
	StateInvDelete    State = "inv_delete"

	// Персонал/табель
	StatePayEmpList     State = "pay_emp_list"
	StatePayEmpCard     State = "pay_emp_card"
	StatePayAddName     State = "pay_add_name"
	StatePayAddPosition State = "pay_add_position"
	StatePayAddRate     State = "pay_add_rate"
	StatePayEditName    State = "pay_edit_name"
	StatePayEditPos     State = "pay_edit_position"
	StatePayEditRate    State = "pay_edit_rate"
	StatePayDelete      State = "pay_delete"
	StatePayPeriodStart State = "pay_period_start"
	StatePayPeriodEnd   State = "pay_period_end"
	StatePayResults     State = "pay_results"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
