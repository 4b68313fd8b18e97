package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/dto"
	bookingapp "campusrent/internal/app/handlers/booking"
	"campusrent/internal/app/queries"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	Decide(c *gin.Context)
	ListMine(c *gin.Context)
	ListRequests(c *gin.Context)
}

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type createBookingRequest struct {
	ProductID string    `json:"product_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (h BookingHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.RequestBookingCommand{
		CommandID:       uuid.NewString(),
		ProductID:       req.ProductID,
		RenterID:        user.ID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.RequestBookingCommand, *bookingapp.RequestBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type decideBookingRequest struct {
	Decision string `json:"decision"`
}

func (h BookingHandler) Decide(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req decideBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.DecideBookingCommand{
		BookingID: c.Param("id"),
		ActorID:   user.ID,
		Decision:  bookingapp.Decision(req.Decision),
	}
	result, err := commands.Dispatch[bookingapp.DecideBookingCommand, *bookingapp.DecideBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) ListMine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[bookingapp.ListRenterBookingsQuery, dto.RenterBookingCollection](c.Request.Context(), h.Queries, bookingapp.ListRenterBookingsQuery{RenterID: user.ID})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) ListRequests(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[bookingapp.ListOwnerRequestsQuery, dto.OwnerRequestCollection](c.Request.Context(), h.Queries, bookingapp.ListOwnerRequestsQuery{OwnerID: user.ID})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BookingHTTP = BookingHandler{}
