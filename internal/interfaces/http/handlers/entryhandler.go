package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/application/entry/dto"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/utils"
)

type EntryHandler struct {
	getEntryUC getEntryUseCase
	logger     logger.Interface
}

func NewEntryHandler(getEntryUC getEntryUseCase, logger logger.Interface) *EntryHandler {
	return &EntryHandler{
		getEntryUC: getEntryUC,
		logger:     logger,
	}
}

// GetEntry handles GET /:handle/entry/:anchor
func (h *EntryHandler) GetEntry(c *gin.Context) {
	var req dto.GetEntryRequest
	if err := c.ShouldBindUri(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid entry path", err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getEntryUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
