// Package router assembles the gin engines of the three applications.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crud-apps/internal/handlers"
	"crud-apps/internal/handlers/dto"
	"crud-apps/internal/middleware"
	"crud-apps/internal/storage"
	"crud-apps/web"
)

func newEngine(log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log))
	r.StaticFS("/static", http.FS(web.Static()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})
	return r
}

func NewTodoRouter(store handlers.TaskStore, log logrus.FieldLogger) (*gin.Engine, error) {
	render, err := handlers.NewRenderer(web.Templates(), log, "tasks.html")
	if err != nil {
		return nil, err
	}
	h := handlers.NewTaskHandler(store, render, log)

	r := newEngine(log)
	r.GET("/", h.Dashboard)
	for _, prefix := range []string{"/api/tasks", "/tasks"} {
		g := r.Group(prefix)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.PUT("/:id", h.Toggle)
		g.DELETE("/:id", h.Delete)
	}
	return r, nil
}

func NewExpenseRouter(db *storage.DB, log logrus.FieldLogger) (*gin.Engine, error) {
	render, err := handlers.NewRenderer(web.Templates(), log, "expenses.html")
	if err != nil {
		return nil, err
	}
	h := handlers.NewExpenseHandler(db, render, log)

	r := newEngine(log)
	r.GET("/", h.Dashboard)
	r.GET("/filter", h.Filter)

	expenses := r.Group("/expenses")
	{
		expenses.GET("", h.List)
		expenses.POST("", h.Create)
		expenses.GET("/total", h.Total)
		expenses.GET("/category/:category", h.ByCategory)
		expenses.GET("/:id", h.Get)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
	return r, nil
}

func NewBookingRouter(db *storage.DB, svc handlers.BookingSvc, log logrus.FieldLogger) (*gin.Engine, error) {
	render, err := handlers.NewRenderer(web.Templates(), log, "booking.html")
	if err != nil {
		return nil, err
	}
	h := handlers.NewBookingHandler(db, svc, render, log)

	r := newEngine(log)
	r.GET("/", h.Dashboard)
	r.GET("/booking-system/stats", h.Stats)

	venues := r.Group("/venues")
	{
		venues.POST("", h.CreateVenue)
		venues.GET("", h.ListVenues)
		venues.GET("/:id", h.GetVenue)
		venues.DELETE("/:id", h.DeleteVenue)
		venues.GET("/:id/events", h.VenueEvents)
		venues.GET("/:id/occupancy", h.VenueOccupancy)
	}

	events := r.Group("/events")
	{
		events.POST("", h.CreateEvent)
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
		events.DELETE("/:id", h.DeleteEvent)
		events.GET("/:id/bookings", h.EventBookings)
		events.GET("/:id/available-tickets", h.AvailableTickets)
		events.GET("/:id/revenue", h.EventRevenue)
	}

	ticketTypes := r.Group("/ticket-types")
	{
		ticketTypes.POST("", h.CreateTicketType)
		ticketTypes.GET("", h.ListTicketTypes)
		ticketTypes.GET("/:id", h.GetTicketType)
		ticketTypes.DELETE("/:id", h.DeleteTicketType)
		ticketTypes.GET("/:id/bookings", h.TicketTypeBookings)
	}

	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/search", h.SearchBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.PATCH("/:id/status", h.UpdateBookingStatus)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
	return r, nil
}
