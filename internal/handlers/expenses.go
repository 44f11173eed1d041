package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crud-apps/internal/handlers/dto"
	"crud-apps/internal/models"
)

type ExpenseStore interface {
	CreateExpense(ctx context.Context, e *models.Expense) error
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, patch models.ExpensePatch) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, error)
	CategoryTotals(ctx context.Context, f models.ExpenseFilter) ([]models.CategoryTotal, error)
	ExpenseTotals(ctx context.Context, f models.ExpenseFilter) (*models.ExpenseTotal, error)
}

type ExpenseHandler struct {
	db     ExpenseStore
	render *Renderer
	log    logrus.FieldLogger
}

func NewExpenseHandler(db ExpenseStore, render *Renderer, log logrus.FieldLogger) *ExpenseHandler {
	return &ExpenseHandler{db: db, render: render, log: log}
}

// filter reads start_date, end_date and category from the query string.
func (h *ExpenseHandler) filter(c *gin.Context) (models.ExpenseFilter, bool) {
	var q dto.ExpenseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return models.ExpenseFilter{}, false
	}
	f, err := q.Filter()
	if err != nil {
		handleError(c, h.log, err)
		return models.ExpenseFilter{}, false
	}
	return f, true
}

func (h *ExpenseHandler) List(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}
	expenses, err := h.db.ListExpenses(c.Request.Context(), f)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

func (h *ExpenseHandler) ByCategory(c *gin.Context) {
	expenses, err := h.db.ListExpenses(c.Request.Context(), models.ExpenseFilter{Category: c.Param("category")})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

// Create accepts form fields or JSON.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.Input()
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if err := in.Validate(); err != nil {
		handleError(c, h.log, err)
		return
	}

	e := in.Expense()
	if err := h.db.CreateExpense(c.Request.Context(), e); err != nil {
		handleError(c, h.log, err)
		return
	}
	h.log.WithFields(logrus.Fields{"expense_id": e.ID, "category": e.Category}).Info("expense created")
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(*e))
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.db.GetExpense(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(*e))
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ExpenseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	patch, err := req.Patch()
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if err := patch.Validate(); err != nil {
		handleError(c, h.log, err)
		return
	}

	e, err := h.db.UpdateExpense(c.Request.Context(), id, patch)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(*e))
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.db.DeleteExpense(c.Request.Context(), id); err != nil {
		handleError(c, h.log, err)
		return
	}
	h.log.WithField("expense_id", id).Info("expense deleted")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Expense deleted successfully"})
}

// Total reports the overall sum and the per-category breakdown.
func (h *ExpenseHandler) Total(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}
	totals, err := h.db.ExpenseTotals(c.Request.Context(), f)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// Dashboard renders every expense.
func (h *ExpenseHandler) Dashboard(c *gin.Context) {
	h.dashboard(c, models.ExpenseFilter{}, dto.ExpenseQuery{})
}

// Filter renders the dashboard restricted by category and date range.
func (h *ExpenseHandler) Filter(c *gin.Context) {
	var q dto.ExpenseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	f, err := q.Filter()
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	h.dashboard(c, f, q)
}

func (h *ExpenseHandler) dashboard(c *gin.Context, f models.ExpenseFilter, q dto.ExpenseQuery) {
	ctx := c.Request.Context()
	expenses, err := h.db.ListExpenses(ctx, f)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	totals, err := h.db.CategoryTotals(ctx, f)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	h.render.Render(c, "expenses.html", newExpensesPage(expenses, totals, q))
}
