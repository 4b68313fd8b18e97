package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"campusrent/internal/app/dto"
	availabilityapp "campusrent/internal/app/handlers/availability"
	"campusrent/internal/app/queries"
)

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	Check(c *gin.Context)
}

type AvailabilityHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, availabilityapp.GetCalendarQuery{
		ProductID: c.Param("id"),
	})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Check(c *gin.Context) {
	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
		return
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return
	}
	result, err := queries.Ask[availabilityapp.CheckRangeQuery, availabilityapp.CheckRangeResult](c.Request.Context(), h.Queries, availabilityapp.CheckRangeQuery{
		ProductID: c.Param("id"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseDateParam(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
