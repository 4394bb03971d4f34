package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/casefolio/backend/internal/casestudy/template"
	"github.com/casefolio/backend/internal/http/response"
)

type TemplateHandler struct {
	registry *template.Registry
}

func NewTemplateHandler(registry *template.Registry) *TemplateHandler {
	return &TemplateHandler{registry: registry}
}

func (th *TemplateHandler) List(c *gin.Context) {
	response.RespondOK(c, gin.H{"templates": th.registry.All()})
}

func (th *TemplateHandler) Get(c *gin.Context) {
	id := c.Param("id")
	tpl, ok := th.registry.Get(id)
	if !ok {
		response.RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("unknown template %q", id))
		return
	}
	response.RespondOK(c, gin.H{"template": tpl})
}
