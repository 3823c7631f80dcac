package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
	"github.com/SscSPs/library_circulation/internal/dto"
	"github.com/SscSPs/library_circulation/internal/middleware"
	"github.com/gin-gonic/gin"
)

type itemHandler struct {
	catalog portssvc.CatalogSvcFacade
	loans   portssvc.LoanGuard
}

func registerItemRoutes(rg *gin.RouterGroup, catalog portssvc.CatalogSvcFacade, loans portssvc.LoanGuard) {
	h := &itemHandler{catalog: catalog, loans: loans}

	items := rg.Group("/items")
	{
		items.GET("", h.listItems)
		items.POST("", h.addItem)
		items.GET("/:itemID", h.getItem)
		items.DELETE("/:itemID", h.deleteItem)
	}
}

// listItems godoc
// @Summary List catalog items
// @Tags items
// @Produce  json
// @Success 200 {array} dto.ItemResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list items"
// @Router /items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	items, err := h.catalog.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListItemResponse(items))
}

// addItem godoc
// @Summary Add a catalog item
// @Tags items
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateItemRequest true "Item"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Item already exists"
// @Router /items [post]
func (h *itemHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	item, err := h.catalog.AddItem(c.Request.Context(), req.ToDomainItem())
	if err != nil {
		respondError(c, logger, err, "Failed to add item")
		return
	}
	logger.Info("Catalog item added", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToItemResponse(*item))
}

// getItem godoc
// @Summary Get a catalog item
// @Description Includes whether the item is currently on loan.
// @Tags items
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /items/{itemID} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	item, err := h.catalog.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve item")
		return
	}
	res := dto.ToItemResponse(*item)
	onLoan, err := h.loans.IsItemOnLoan(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve item")
		return
	}
	res.OnLoan = &onLoan
	c.JSON(http.StatusOK, res)
}

// deleteItem godoc
// @Summary Delete a catalog item
// @Description Refused while the item is on loan.
// @Tags items
// @Param   itemID path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 409 {object} dto.ErrorResponse "Item is on loan"
// @Router /items/{itemID} [delete]
func (h *itemHandler) deleteItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.catalog.DeleteItem(c.Request.Context(), c.Param("itemID")); err != nil {
		respondError(c, logger, err, "Failed to delete item")
		return
	}
	c.Status(http.StatusNoContent)
}
