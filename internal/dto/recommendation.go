package dto

type CalculatorRequest struct {
	MonthlyIncome  string `json:"monthly_income" form:"monthly_income"`
	CurrentSavings string `json:"current_savings" form:"current_savings"`
}

type RecommendationResponse struct {
	RecommendedPercentage float64 `json:"recommended_percentage"`
	RecommendedAmount     string  `json:"recommended_amount"`
	MonthlyIncome         string  `json:"monthly_income"`
	CurrentSavings        string  `json:"current_savings"`
}
