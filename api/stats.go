package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safarpk/safarpk/internal/service/stats"
)

type StatsHandler struct {
	service stats.StatsUseCase
}

func NewStatsHandler(service stats.StatsUseCase) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) Register(router *gin.RouterGroup) {
	router.GET("/overview", h.overview)
}

func (h *StatsHandler) overview(c *gin.Context) {
	o, err := h.service.Overview(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
