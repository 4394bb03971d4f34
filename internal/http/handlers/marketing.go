package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/casefolio/backend/internal/http/response"
	"github.com/casefolio/backend/internal/services"
)

type MarketingHandler struct {
	marketingService services.MarketingService
}

func NewMarketingHandler(marketingService services.MarketingService) *MarketingHandler {
	return &MarketingHandler{marketingService: marketingService}
}

func (mh *MarketingHandler) GetForDesigner(c *gin.Context) {
	designer := strings.TrimSpace(c.Param("designer"))
	if designer == "" || designer == "undefined" {
		response.RespondError(c, http.StatusBadRequest, "invalid_designer", fmt.Errorf("invalid designer name"))
		return
	}

	mc, count, err := mh.marketingService.ForDesigner(c.Request.Context(), designer)
	if err != nil {
		if errors.Is(err, services.ErrNoPublishedStudies) {
			response.RespondError(c, http.StatusNotFound, "no_published_studies", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "marketing_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"marketingContent": mc,
		"caseStudyCount":   count,
	})
}
