package handlers

import (
	"sort"
	"strings"
	"time"

	"crud-apps/internal/handlers/dto"
	"crud-apps/internal/models"
)

// CategoryDef defines the properties of a category.
type CategoryDef struct {
	Name  string
	Icon  string
	Color string
}

var categories = []CategoryDef{
	{"Food", "🍽️", "#60a5fa"},
	{"Transport", "🚌", "#a78bfa"},
	{"Entertainment", "🎮", "#f472b6"},
	{"Shopping", "🛍️", "#34d399"},
	{"Bills", "💡", "#fbbf24"},
	{"Healthcare", "🩺", "#fb7185"},
	{"Other", "📦", "#94a3b8"},
}

// CategoryStyle defines the visual style for a category.
type CategoryStyle struct {
	Icon  string
	Color string
}

func categoryStyle(category string) CategoryStyle {
	for _, c := range categories {
		if strings.EqualFold(c.Name, category) {
			return CategoryStyle{Icon: c.Icon, Color: c.Color}
		}
	}
	return CategoryStyle{Icon: "📦", Color: "#94a3b8"}
}

// ExpenseItem represents an expense in the list view.
type ExpenseItem struct {
	models.Expense
	CategoryStyle CategoryStyle
}

// ExpenseGroup groups expenses by date.
type ExpenseGroup struct {
	Title string
	Date  string
	Total float64
	Items []ExpenseItem
}

// StatsCategoryItem represents a category with its spending statistics.
type StatsCategoryItem struct {
	Category      string
	Total         float64
	Count         int
	Percentage    float64
	CategoryStyle CategoryStyle
}

// ExpensesPage is the data passed to the expense dashboard.
type ExpensesPage struct {
	Total      float64
	Count      int
	Groups     []ExpenseGroup
	Breakdown  []StatsCategoryItem
	Categories []CategoryDef
	Query      dto.ExpenseQuery
	Filtered   bool
	Today      string
}

func newExpensesPage(expenses []models.Expense, totals []models.CategoryTotal, q dto.ExpenseQuery) ExpensesPage {
	page := ExpensesPage{
		Count:      len(expenses),
		Groups:     groupByDate(expenses, time.Now()),
		Categories: categories,
		Query:      q,
		Filtered:   q != dto.ExpenseQuery{},
		Today:      time.Now().Format(models.DateLayout),
	}
	for _, ct := range totals {
		page.Total += ct.Total
	}
	page.Breakdown = breakdown(totals, page.Total)
	return page
}

func breakdown(totals []models.CategoryTotal, total float64) []StatsCategoryItem {
	items := make([]StatsCategoryItem, 0, len(totals))
	for _, ct := range totals {
		percentage := 0.0
		if total > 0 {
			percentage = (ct.Total / total) * 100
		}
		items = append(items, StatsCategoryItem{
			Category:      ct.Category,
			Total:         ct.Total,
			Count:         ct.Count,
			Percentage:    percentage,
			CategoryStyle: categoryStyle(ct.Category),
		})
	}
	return items
}

// groupByDate buckets expenses per calendar day, newest day first.
func groupByDate(expenses []models.Expense, now time.Time) []ExpenseGroup {
	groupsMap := make(map[string]*ExpenseGroup)
	for _, e := range expenses {
		dateStr := e.Date.Format(models.DateLayout)
		group, ok := groupsMap[dateStr]
		if !ok {
			group = &ExpenseGroup{Date: dateStr, Title: groupTitle(e.Date, now)}
			groupsMap[dateStr] = group
		}
		group.Total += e.Amount
		group.Items = append(group.Items, ExpenseItem{Expense: e, CategoryStyle: categoryStyle(e.Category)})
	}

	groups := make([]ExpenseGroup, 0, len(groupsMap))
	for _, g := range groupsMap {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })
	return groups
}

func groupTitle(date, now time.Time) string {
	dateStr := date.Format(models.DateLayout)
	if dateStr == now.Format(models.DateLayout) {
		return "TODAY"
	}
	if dateStr == now.AddDate(0, 0, -1).Format(models.DateLayout) {
		return "YESTERDAY"
	}
	return strings.ToUpper(date.Format("Mon, 02 Jan '06"))
}
