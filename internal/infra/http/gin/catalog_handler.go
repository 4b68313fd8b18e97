package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/dto"
	catalogapp "campusrent/internal/app/handlers/catalog"
	"campusrent/internal/app/queries"
)

type CatalogHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	ListMine(c *gin.Context)
}

type CatalogHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type createProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DailyPrice  int64  `json:"daily_price"`
	Deposit     int64  `json:"deposit"`
	Currency    string `json:"currency"`
}

func (h CatalogHandler) List(c *gin.Context) {
	result, err := queries.Ask[catalogapp.ListCatalogQuery, dto.ProductCollection](c.Request.Context(), h.Queries, catalogapp.ListCatalogQuery{})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CatalogHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := catalogapp.CreateProductCommand{
		ProductID:   uuid.NewString(),
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		DailyPrice:  req.DailyPrice,
		Deposit:     req.Deposit,
		Currency:    req.Currency,
	}
	result, err := commands.Dispatch[catalogapp.CreateProductCommand, dto.Product](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h CatalogHandler) ListMine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[catalogapp.ListOwnerProductsQuery, dto.ProductCollection](c.Request.Context(), h.Queries, catalogapp.ListOwnerProductsQuery{OwnerID: user.ID})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ CatalogHTTP = CatalogHandler{}
