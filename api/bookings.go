package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wookrail/trainbooking/internal/domain"
	"github.com/wookrail/trainbooking/internal/service/booking"
	"github.com/wookrail/trainbooking/internal/service/query"
	"github.com/wookrail/trainbooking/internal/ticket"
)

type BookingHandler struct {
	bookings booking.BookingUseCase
	queries  query.QueryUseCase
	tickets  *ticket.Renderer
}

type bookTicketRequest struct {
	Passenger  string `json:"passenger"`
	Age        int    `json:"age"`
	Berth      string `json:"berth"`
	TrainNo    string `json:"train_no"`
	TravelDate string `json:"date"`
}

type bookingResponse struct {
	PNR        string `json:"pnr"`
	Passenger  string `json:"passenger"`
	Age        int    `json:"age"`
	Berth      string `json:"berth"`
	TrainNo    string `json:"train_no"`
	TravelDate string `json:"date"`
	Status     string `json:"status"`
	Coach      string `json:"coach,omitempty"`
}

func NewBookingHandler(bookings booking.BookingUseCase, queries query.QueryUseCase, tickets *ticket.Renderer) *BookingHandler {
	return &BookingHandler{bookings: bookings, queries: queries, tickets: tickets}
}

// Register attaches the booking endpoints. The group must carry SessionAuth.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/book", h.book)
	router.GET("/pnr/:pnr", h.pnrStatus)
	router.GET("/history", h.history)
	router.GET("/download/:pnr", h.download)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.bookings.Book(c.Request.Context(), sessionOwner(c), booking.BookTicketInput{
		Passenger:  req.Passenger,
		Age:        req.Age,
		BerthClass: req.Berth,
		TrainNo:    req.TrainNo,
		TravelDate: req.TravelDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created, false))
}

func (h *BookingHandler) pnrStatus(c *gin.Context) {
	found, err := h.queries.GetByPNR(c.Request.Context(), c.Param("pnr"), sessionOwner(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found, true))
}

func (h *BookingHandler) history(c *gin.Context) {
	bookings, err := h.queries.History(c.Request.Context(), sessionOwner(c))
	if err != nil {
		writeError(c, err)
		return
	}

	history := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		history = append(history, toBookingResponse(&bookings[i], false))
	}
	c.JSON(http.StatusOK, history)
}

func (h *BookingHandler) download(c *gin.Context) {
	found, err := h.queries.GetByPNR(c.Request.Context(), c.Param("pnr"), sessionOwner(c))
	if err != nil {
		writeError(c, err)
		return
	}

	pdf, err := h.tickets.Render(found)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ticket.Filename(found.PNR)+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func toBookingResponse(b *domain.Booking, withCoach bool) bookingResponse {
	resp := bookingResponse{
		PNR:        b.PNR,
		Passenger:  b.Passenger,
		Age:        b.Age,
		Berth:      b.BerthClass,
		TrainNo:    b.TrainNo,
		TravelDate: b.TravelDate,
		Status:     string(b.Status),
	}
	if withCoach {
		resp.Coach = b.Coach()
	}
	return resp
}
