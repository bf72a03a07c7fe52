package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/application/user/dto"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/utils"
)

type AuthHandler struct {
	loginUC   loginUseCase
	refresher tokenRefresher
	logger    logger.Interface
}

func NewAuthHandler(loginUC loginUseCase, refresher tokenRefresher, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUC:   loginUC,
		refresher: refresher,
		logger:    logger,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(constants.ErrMsgValidationFailed, err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", result)
}

// RefreshToken handles POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(constants.ErrMsgValidationFailed, err.Error()))
		return
	}

	pair, err := h.refresher.Refresh(req.RefreshToken)
	if err != nil {
		h.logger.Warnw("failed to refresh token", "error", err)
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid or expired refresh token"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Me handles GET /api/auth/me and echoes the authenticated identity.
func (h *AuthHandler) Me(c *gin.Context) {
	userName := c.GetString(constants.ContextKeyUserName)
	if userName == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("not authenticated"))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"id":       c.GetString(constants.ContextKeyUserID),
		"username": userName,
	})
}
