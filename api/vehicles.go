package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/service/vehicles"
)

type VehicleHandler struct {
	service vehicles.VehicleUseCase
}

type availabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

func NewVehicleHandler(service vehicles.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// Register mounts public reads; writes run behind guards and the service
// checks ownership.
func (h *VehicleHandler) Register(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)

	write := router.Group("", guards...)
	write.POST("", h.create)
	write.PUT("/:id", h.update)
	write.PATCH("/:id/availability", h.setAvailability)
	write.DELETE("/:id", h.delete)
}

func (h *VehicleHandler) list(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), vehicles.ListFilter{
		Search:        c.Query("search"),
		DriverID:      c.Query("driver_id"),
		AvailableOnly: c.Query("available") == "true",
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[domain.Vehicle]{Items: items})
}

func (h *VehicleHandler) get(c *gin.Context) {
	v, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VehicleHandler) create(c *gin.Context) {
	var req vehicles.VehicleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	v, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusCreated, v)
}

func (h *VehicleHandler) update(c *gin.Context) {
	var req vehicles.VehicleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	v, err := h.service.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusOK, v)
}

func (h *VehicleHandler) setAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	v, err := h.service.SetAvailability(c.Request.Context(), actorFrom(c), c.Param("id"), *req.Available)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusOK, v)
}

func (h *VehicleHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusOK, nil)
}

// respondMutation re-fetches the caller's fleet; admins get every vehicle.
func (h *VehicleHandler) respondMutation(c *gin.Context, status int, item *domain.Vehicle) {
	filter := vehicles.ListFilter{}
	if actor := actorFrom(c); !actor.IsAdmin() {
		filter.DriverID = actor.UserID
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(status, mutationResponse[domain.Vehicle]{Item: item, Items: items})
}
