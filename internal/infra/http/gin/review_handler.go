package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/dto"
	reviewsapp "campusrent/internal/app/handlers/reviews"
)

type ReviewHTTP interface {
	Submit(c *gin.Context)
	RecomputeRating(c *gin.Context)
}

type ReviewHandler struct {
	Commands commands.Bus
	Logger   *slog.Logger
}

type submitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h ReviewHandler) Submit(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reviewsapp.SubmitReviewCommand{
		BookingID:  c.Param("id"),
		ReviewerID: user.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	result, err := commands.Dispatch[reviewsapp.SubmitReviewCommand, dto.Review](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// RecomputeRating rebuilds a landlord's rating snapshot from the review set.
func (h ReviewHandler) RecomputeRating(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	cmd := reviewsapp.RecomputeRatingCommand{LandlordID: c.Param("id")}
	result, err := commands.Dispatch[reviewsapp.RecomputeRatingCommand, dto.LandlordRating](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ReviewHTTP = ReviewHandler{}
