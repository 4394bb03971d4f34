package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casefolio/backend/internal/assembly"
	types "github.com/casefolio/backend/internal/domain"
	"github.com/casefolio/backend/internal/http/middleware"
	"github.com/casefolio/backend/internal/http/response"
	"github.com/casefolio/backend/internal/platform/openai"
	"github.com/casefolio/backend/internal/services"
)

type CaseStudyHandler struct {
	caseStudyService services.CaseStudyService
}

func NewCaseStudyHandler(caseStudyService services.CaseStudyService) *CaseStudyHandler {
	return &CaseStudyHandler{caseStudyService: caseStudyService}
}

// caseStudyView shapes a row for JSON responses, decoding the stored answers
// blob into an object. Undecodable answers render as an empty object.
func caseStudyView(cs *types.CaseStudy) gin.H {
	answers := map[string]any{}
	if len(cs.Answers) > 0 {
		_ = json.Unmarshal(cs.Answers, &answers)
	}
	return gin.H{
		"id":         cs.ID,
		"title":      cs.Title,
		"template":   cs.Template,
		"status":     cs.Status,
		"content":    cs.Content,
		"answers":    answers,
		"created_at": cs.CreatedAt,
		"updated_at": cs.UpdatedAt,
	}
}

func (ch *CaseStudyHandler) owner(c *gin.Context) (uuid.UUID, bool) {
	ownerID, err := ch.caseStudyService.ResolveOwner(c.Request.Context(), middleware.UserIDFrom(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "owner_resolution_failed", err)
		return uuid.Nil, false
	}
	return ownerID, true
}

func (ch *CaseStudyHandler) List(c *gin.Context) {
	ownerID, ok := ch.owner(c)
	if !ok {
		return
	}
	items, err := ch.caseStudyService.List(c.Request.Context(), ownerID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	views := make([]gin.H, 0, len(items))
	for _, item := range items {
		views = append(views, caseStudyView(item))
	}
	response.RespondOK(c, gin.H{"items": views})
}

func (ch *CaseStudyHandler) Create(c *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Template string `json:"template"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := ch.caseStudyService.Create(c.Request.Context(), req.Title, req.Template, middleware.UserIDFrom(c))
	if err != nil {
		if errors.Is(err, services.ErrUnknownTemplate) {
			response.RespondError(c, http.StatusBadRequest, "unknown_template", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"id": created.ID})
}

func (ch *CaseStudyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	ownerID, ok := ch.owner(c)
	if !ok {
		return
	}
	cs, err := ch.caseStudyService.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "get_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"cs": caseStudyView(cs)})
}

func (ch *CaseStudyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Title   *string                    `json:"title"`
		Status  *string                    `json:"status"`
		Content *string                    `json:"content"`
		Answers map[string]json.RawMessage `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ownerID, ok := ch.owner(c)
	if !ok {
		return
	}
	updated, err := ch.caseStudyService.Update(c.Request.Context(), id, ownerID, services.CaseStudyUpdate{
		Title:   req.Title,
		Status:  req.Status,
		Content: req.Content,
		Answers: req.Answers,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.RespondError(c, http.StatusNotFound, "not_found", err)
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrUnknownTemplate):
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		default:
			response.RespondError(c, http.StatusInternalServerError, "update_failed", err)
		}
		return
	}
	response.RespondOK(c, gin.H{"cs": caseStudyView(updated)})
}

func (ch *CaseStudyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	ownerID, ok := ch.owner(c)
	if !ok {
		return
	}
	if err := ch.caseStudyService.Delete(c.Request.Context(), id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *CaseStudyHandler) GenerateDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Mode     string                     `json:"mode"`
		Template string                     `json:"template"`
		Answers  map[string]json.RawMessage `json:"answers"`
	}
	// Body is optional; answers and template, when present, override the
	// stored row for this run only.
	_ = c.ShouldBindJSON(&req)

	ownerID, ok := ch.owner(c)
	if !ok {
		return
	}
	updated, err := ch.caseStudyService.GenerateDraft(c.Request.Context(), id, ownerID, services.DraftRequest{
		Mode:     assembly.Mode(req.Mode),
		Template: req.Template,
		Answers:  req.Answers,
	})
	if err != nil {
		var genErr *openai.GenerationError
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.RespondError(c, http.StatusNotFound, "not_found", err)
		case errors.Is(err, services.ErrUnknownTemplate):
			response.RespondError(c, http.StatusBadRequest, "unknown_template", err)
		case errors.As(err, &genErr):
			response.RespondError(c, http.StatusBadGateway, "generation_failed", err)
		default:
			response.RespondError(c, http.StatusInternalServerError, "generation_failed", err)
		}
		return
	}
	response.RespondOK(c, gin.H{"cs": caseStudyView(updated)})
}
