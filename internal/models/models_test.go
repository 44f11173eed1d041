package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskInputValidate(t *testing.T) {
	assert.NoError(t, TaskInput{Title: "Buy milk"}.Validate())

	err := TaskInput{}.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "title is required")
}

func TestExpenseInputValidate(t *testing.T) {
	valid := ExpenseInput{Amount: 12.5, Category: "Food", Description: "Lunch", Date: time.Now()}

	tests := []struct {
		name    string
		mutate  func(*ExpenseInput)
		wantMsg string
	}{
		{"valid", func(*ExpenseInput) {}, ""},
		{"zero amount", func(in *ExpenseInput) { in.Amount = 0 }, "amount must be greater than 0"},
		{"negative amount", func(in *ExpenseInput) { in.Amount = -3 }, "amount must be greater than 0"},
		{"unknown category", func(in *ExpenseInput) { in.Category = "Travel" }, "category must be one of"},
		{"missing description", func(in *ExpenseInput) { in.Description = "" }, "description is required"},
		{"missing date", func(in *ExpenseInput) { in.Date = time.Time{} }, "date is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestExpenseInputNormalizesDate(t *testing.T) {
	in := ExpenseInput{Amount: 1, Category: "Other", Description: "x", Date: time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC)}
	e := in.Expense()
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), e.Date)
}

func TestExpensePatch(t *testing.T) {
	bad := -1.0
	assert.ErrorIs(t, ExpensePatch{Amount: &bad}.Validate(), ErrValidation)

	cat := "Bills"
	assert.ErrorIs(t, ExpensePatch{Category: new(string)}.Validate(), ErrValidation)
	assert.NoError(t, ExpensePatch{Category: &cat}.Validate())
	assert.NoError(t, ExpensePatch{}.Validate())

	e := &Expense{Amount: 5, Category: "Food", Description: "Coffee"}
	amount := 7.25
	ExpensePatch{Amount: &amount, Category: &cat}.Apply(e)
	assert.Equal(t, 7.25, e.Amount)
	assert.Equal(t, "Bills", e.Category)
	assert.Equal(t, "Coffee", e.Description)
}

func TestIsCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, IsCategory(c), c)
	}
	assert.False(t, IsCategory("food"))
	assert.False(t, IsCategory(""))
}

func TestBookingInputsValidate(t *testing.T) {
	assert.NoError(t, VenueInput{Name: "Hall", Location: "Town", Capacity: 10}.Validate())
	assert.ErrorIs(t, VenueInput{Name: "Hall", Location: "Town"}.Validate(), ErrValidation)

	assert.ErrorIs(t, EventInput{Name: "Gala", Description: "d", VenueID: 1}.Validate(), ErrValidation)
	assert.NoError(t, EventInput{Name: "Gala", Description: "d", VenueID: 1, Date: time.Now()}.Validate())

	assert.NoError(t, TicketTypeInput{Name: TicketTypeVIP, Price: 10, Description: "d"}.Validate())
	err := TicketTypeInput{Name: "Gold", Price: 10, Description: "d"}.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name must be one of: VIP, Standard, Economy")

	err = BookingInput{EventID: 1, TicketTypeID: 1, CustomerName: "A", CustomerEmail: "a@x", Quantity: 0}.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "quantity must be greater than 0")
}

func TestStatusUpdateValidate(t *testing.T) {
	for _, s := range BookingStatuses {
		assert.NoError(t, StatusUpdate{Status: s}.Validate())
	}
	assert.ErrorIs(t, StatusUpdate{Status: "refunded"}.Validate(), ErrValidation)
	assert.ErrorIs(t, StatusUpdate{}.Validate(), ErrValidation)
}

func TestBookingPatchApply(t *testing.T) {
	b := &Booking{CustomerName: "A", Quantity: 2, TotalAmount: 100}

	name := "B"
	BookingPatch{CustomerName: &name}.Apply(b, 75)
	assert.Equal(t, "B", b.CustomerName)
	assert.Equal(t, 100.0, b.TotalAmount, "no quantity, no reprice")

	qty := 4
	BookingPatch{Quantity: &qty}.Apply(b, 75)
	assert.Equal(t, 4, b.Quantity)
	assert.Equal(t, 300.0, b.TotalAmount)

	zero := 0
	assert.ErrorIs(t, BookingPatch{Quantity: &zero}.Validate(), ErrValidation)
}

func TestAvailableAndOccupancy(t *testing.T) {
	assert.Equal(t, 40, Available(100, 60))
	assert.Equal(t, 0, Available(100, 130), "never negative")
	assert.InDelta(t, 25.0, OccupancyRate(25, 100), 1e-9)
	assert.Zero(t, OccupancyRate(10, 0))
}

func TestNewConfirmationCode(t *testing.T) {
	for range 20 {
		code, err := NewConfirmationCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{8}$`, code)
	}
}
