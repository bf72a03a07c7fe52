package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/application/search/dto"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/utils"
)

// SearchHandler serves the weblog search page.
type SearchHandler struct {
	searchUC searchEntriesUseCase
	logger   logger.Interface
}

func NewSearchHandler(searchUC searchEntriesUseCase, logger logger.Interface) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search handles GET /:handle/search?q=&cat=&locale=&page= and the
// /:handle/:locale/search form, where the path locale wins over the query.
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchEntriesRequest
	if err := c.ShouldBindUri(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid weblog handle", err.Error()))
		return
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warnw("invalid search query parameters", "error", err, "query", c.Request.URL.RawQuery)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid search parameters", err.Error()))
		return
	}
	page, err := utils.ParseSearchPage(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.Page = page
	if locale := c.Param("locale"); locale != "" {
		req.Locale = locale
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.searchUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
