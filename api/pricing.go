package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safarpk/safarpk/internal/pricing"
	"github.com/safarpk/safarpk/internal/repository"
	pricingsvc "github.com/safarpk/safarpk/internal/service/pricing"
)

type PricingHandler struct {
	service pricingsvc.PricingUseCase
}

type pricingResponse struct {
	Configured bool             `json:"configured"`
	Payload    *pricing.Payload `json:"payload"`
}

type toggleRequest struct {
	Form   pricing.Form `json:"form"`
	Season string       `json:"season" binding:"required"`
	Month  int          `json:"month" binding:"required"`
}

type formResponse struct {
	Form    pricing.Form     `json:"form"`
	Errors  []string         `json:"errors"`
	Payload *pricing.Payload `json:"payload"`
}

type quoteResponse struct {
	Days []pricingsvc.DayQuote `json:"days"`
}

func NewPricingHandler(service pricingsvc.PricingUseCase) *PricingHandler {
	return &PricingHandler{service: service}
}

// Register mounts the stateless form helpers and reads publicly; saving runs
// behind guards.
func (h *PricingHandler) Register(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	router.POST("/form/toggle", h.toggle)
	router.POST("/form/validate", h.validate)
	router.GET("/:resource/:id", h.get)
	router.GET("/:resource/:id/quote", h.quote)

	write := router.Group("", guards...)
	write.PUT("/:resource/:id", h.save)
}

func (h *PricingHandler) get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), repository.Resource(c.Param("resource")), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricingResponse{Configured: true, Payload: p})
}

func (h *PricingHandler) save(c *gin.Context) {
	var form pricing.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.service.Save(c.Request.Context(), actorFrom(c),
		repository.Resource(c.Param("resource")), c.Param("id"), form)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := pricingResponse{}
	if p, ok := result.Payload(); ok {
		resp.Configured = true
		resp.Payload = &p
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) quote(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	days, err := h.service.Quote(c.Request.Context(), repository.Resource(c.Param("resource")), c.Param("id"), from, to)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteResponse{Days: days})
}

// toggle applies one month click to the posted form.
func (h *PricingHandler) toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	season, err := pricing.ParseSeason(req.Season)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	form := req.Form
	if err := form.Toggle(season, req.Month); err != nil {
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, formPreview(form))
}

func (h *PricingHandler) validate(c *gin.Context) {
	var form pricing.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, formPreview(form))
}

// formPreview reports range problems alone; overlap and price messages only
// make sense for a form whose values are in range.
func formPreview(form pricing.Form) formResponse {
	if err := pricing.CheckRanges(form); err != nil {
		return formResponse{Form: form, Errors: []string{err.Error()}}
	}
	result, errs := pricing.Submit(form)
	resp := formResponse{Form: form, Errors: errs}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if len(errs) > 0 {
		return resp
	}
	if p, ok := result.Payload(); ok {
		resp.Payload = &p
	}
	return resp
}
