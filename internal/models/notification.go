package models

// NotificationType тип временного уведомления по прокату.
type NotificationType string

const (
	// NotificationStartToday бронь начинается сегодня по бизнес-календарю.
	NotificationStartToday NotificationType = "start_today"
	// NotificationStartTomorrow бронь начинается завтра по бизнес-календарю.
	NotificationStartTomorrow NotificationType = "start_tomorrow"
	// NotificationReturnToday возврат ожидается сегодня по бизнес-календарю.
	NotificationReturnToday NotificationType = "return_today"
	// NotificationOverdue момент возврата уже прошёл.
	NotificationOverdue NotificationType = "overdue"
)

// Severity важность уведомления для отображения на дашборде.
type Severity string

const (
	// SeverityInfo информационное уведомление.
	SeverityInfo Severity = "info"
	// SeverityWarning требует внимания сегодня.
	SeverityWarning Severity = "warning"
	// SeverityDanger просроченный возврат.
	SeverityDanger Severity = "danger"
)

// Notification уведомление с денормализованным снимком проката,
// чтобы дашборд не делал дополнительных запросов.
type Notification struct {
	Type     NotificationType `json:"type"`
	Severity Severity         `json:"severity"`
	Rental   RentalInfo       `json:"rental"`
}
