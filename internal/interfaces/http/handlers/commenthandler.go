package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/application/entry/dto"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/utils"
)

// CommentHandler serves comment moderation for weblog authors.
type CommentHandler struct {
	moderateUC moderateCommentUseCase
	logger     logger.Interface
}

func NewCommentHandler(moderateUC moderateCommentUseCase, logger logger.Interface) *CommentHandler {
	return &CommentHandler{
		moderateUC: moderateUC,
		logger:     logger,
	}
}

// Moderate handles PUT /api/weblogs/:handle/comments/:id/status with a body of
// {"status": "approved" | "spam" | "disapproved"}.
func (h *CommentHandler) Moderate(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("not authenticated"))
		return
	}

	var req dto.ModerateCommentRequest
	if err := c.ShouldBindUri(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid comment path", err.Error()))
		return
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid moderation request body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}
	req.UserID = userID
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.moderateUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "comment status updated", result)
}
