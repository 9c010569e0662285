package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/service/users"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *UserHandler) list(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), users.ListFilter{
		Search: c.Query("search"),
		Role:   domain.Role(c.Query("role")),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[domain.User]{Items: items})
}

func (h *UserHandler) get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) create(c *gin.Context) {
	var req users.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusCreated, user)
}

func (h *UserHandler) update(c *gin.Context) {
	var req users.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusOK, user)
}

func (h *UserHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	h.respondMutation(c, http.StatusOK, nil)
}

func (h *UserHandler) respondMutation(c *gin.Context, status int, item *domain.User) {
	items, err := h.service.List(c.Request.Context(), users.ListFilter{})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(status, mutationResponse[domain.User]{Item: item, Items: items})
}
