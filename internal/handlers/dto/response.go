package dto

import "crud-apps/internal/models"

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ExpenseResponse renders the date as YYYY-MM-DD rather than a timestamp.
type ExpenseResponse struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

func ToExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.Format(models.DateLayout),
	}
}

func ToExpenseResponses(expenses []models.Expense) []ExpenseResponse {
	resp := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, ToExpenseResponse(e))
	}
	return resp
}

type HealthResponse struct {
	Status string `json:"status"`
}
