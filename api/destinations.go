package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/service/destinations"
)

type DestinationHandler struct {
	service destinations.DestinationUseCase
}

func NewDestinationHandler(service destinations.DestinationUseCase) *DestinationHandler {
	return &DestinationHandler{service: service}
}

// Register mounts public reads; writes run behind guards.
func (h *DestinationHandler) Register(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)

	write := router.Group("", guards...)
	write.POST("", h.create)
	write.PUT("/:id", h.update)
	write.DELETE("/:id", h.delete)
}

func (h *DestinationHandler) list(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), destinations.ListFilter{
		Search: c.Query("search"),
		Region: c.Query("region"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[domain.Destination]{Items: items})
}

func (h *DestinationHandler) get(c *gin.Context) {
	d, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DestinationHandler) create(c *gin.Context) {
	var req destinations.DestinationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusCreated, d)
}

func (h *DestinationHandler) update(c *gin.Context) {
	var req destinations.DestinationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	d, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusOK, d)
}

func (h *DestinationHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusOK, nil)
}

func (h *DestinationHandler) respondMutation(c *gin.Context, status int, item *domain.Destination) {
	items, err := h.service.List(c.Request.Context(), destinations.ListFilter{})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(status, mutationResponse[domain.Destination]{Item: item, Items: items})
}
