package models

type MonthlyRecord struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type CategoryBreakdown struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type SummaryChanges struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	TaxDue  string `json:"taxDue"`
	Savings string `json:"savings"`
}

type Summary struct {
	Income      float64        `json:"income"`
	Expense     float64        `json:"expense"`
	TaxDue      float64        `json:"taxDue"`
	SavingsRate float64        `json:"savingsRate"`
	Country     string         `json:"country"`
	Changes     SummaryChanges `json:"changes"`
}
