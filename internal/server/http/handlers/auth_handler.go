package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/dto"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	acc, token, err := h.facade.Register(c.Request.Context(), req.Login, req.Password, model.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusCreated, toAuthResponse(acc, token))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	acc, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, toAuthResponse(acc, token))
}

func toAuthResponse(acc *model.Account, token string) dto.AuthResponse {
	return dto.AuthResponse{
		Token:   token,
		Account: dto.AccountResponse{ID: acc.ID, Login: acc.Login, Role: string(acc.Role)},
	}
}
