package dto

// ReminderSettings is the writable part of a reminder.
type ReminderSettings struct {
	Frequency string `json:"frequency" validate:"required,oneof=monthly weekly bi-weekly quarterly"`
	SendTime  string `json:"sendTime" validate:"required,oneof=first_day last_day 15th"`
	IsActive  *bool  `json:"isActive" validate:"required"`
}

// Stats is the dashboard summary for one user.
type Stats struct {
	TotalSubscriptions int    `json:"totalSubscriptions"`
	MonthlyCost        string `json:"monthlyCost"`
	YearlyCost         string `json:"yearlyCost"`
	PotentialSavings   string `json:"potentialSavings"`
}

// CategorySpend is the active spend of one category.
type CategorySpend struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
}
