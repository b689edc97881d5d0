package models

// WorkDayView эффективные рабочие часы барбера на день недели
// Для дней без собственной строки WorkDay подставляются часы барбершопа
type WorkDayView struct {
	Weekday   string `json:"weekday"`
	IsWorking bool   `json:"isWorking"`
	StartTime string `json:"startTime,omitempty"` // "09:00", пусто для нерабочего дня
	EndTime   string `json:"endTime,omitempty"`
}

// ClosureView предстоящее закрытие барбершопа или барбера
type ClosureView struct {
	StartDate string  `json:"startDate"` // "2026-08-28"
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
	ShopWide  bool    `json:"shopWide"`
}

// BarberScheduleResponse ответ с расписанием барбера
type BarberScheduleResponse struct {
	BarberID int64         `json:"barberId"`
	WorkDays []WorkDayView `json:"workDays"` // Все семь дней, sunday..saturday
	Closures []ClosureView `json:"closures"` // Предстоящие закрытия
}
