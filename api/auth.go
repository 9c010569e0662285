package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safarpk/safarpk/internal/service/auth"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

type signInRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

type recoveryRequest struct {
	Fragment string `json:"fragment"`
}

type recoveryResponse struct {
	Recovery    bool   `json:"recovery"`
	AccessToken string `json:"access_token,omitempty"`
}

type updatePasswordRequest struct {
	AccessToken string `json:"access_token"`
	Password    string `json:"password" binding:"required"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/signup", h.signUp)
	router.POST("/signup/partner", h.signUpPartner)
	router.POST("/signin", h.signIn)
	router.POST("/password/reset", h.requestReset)
	router.POST("/recovery", h.checkRecovery)
	router.PUT("/password", h.updatePassword)
	router.GET("/me", RequireAuth(h.service), h.me)
}

func (h *AuthHandler) signUp(c *gin.Context) {
	var req auth.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *AuthHandler) signUpPartner(c *gin.Context) {
	var req auth.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, err := h.service.SignUpPartner(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *AuthHandler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, err := h.service.SignIn(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) requestReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func (h *AuthHandler) checkRecovery(c *gin.Context) {
	var req recoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	r, ok := auth.ParseRecoveryFragment(req.Fragment)
	if !ok {
		c.JSON(http.StatusOK, recoveryResponse{})
		return
	}
	c.JSON(http.StatusOK, recoveryResponse{Recovery: true, AccessToken: r.AccessToken})
}

// updatePassword takes the token from the body (recovery) or the
// Authorization header (signed-in user).
func (h *AuthHandler) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	token := req.AccessToken
	if token == "" {
		token, _ = bearerToken(c)
	}
	if token == "" {
		respondError(c, http.StatusUnauthorized, "unauthorized", "missing token", nil)
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), token, req.Password); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AuthHandler) me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
