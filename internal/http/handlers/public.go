package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	csrepo "github.com/casefolio/backend/internal/data/repos/casestudy"
	types "github.com/casefolio/backend/internal/domain"
	"github.com/casefolio/backend/internal/http/response"
)

// PublicHandler serves the unauthenticated showcase: published case studies
// attributed to their designer.
type PublicHandler struct {
	caseStudyRepo csrepo.CaseStudyRepo
}

func NewPublicHandler(caseStudyRepo csrepo.CaseStudyRepo) *PublicHandler {
	return &PublicHandler{caseStudyRepo: caseStudyRepo}
}

// designerName derives the public attribution key from the owner's email
// local part.
func designerName(owner *types.User) string {
	if owner == nil {
		return ""
	}
	return strings.SplitN(owner.Email, "@", 2)[0]
}

func publicView(cs *types.CaseStudy) gin.H {
	view := caseStudyView(cs)
	view["designer"] = designerName(cs.User)
	delete(view, "status")
	return view
}

func (ph *PublicHandler) ListPublished(c *gin.Context) {
	items, err := ph.caseStudyRepo.ListPublished(c.Request.Context(), nil)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	views := make([]gin.H, 0, len(items))
	for _, item := range items {
		views = append(views, publicView(item))
	}
	response.RespondOK(c, gin.H{"caseStudies": views})
}

func (ph *PublicHandler) GetPublished(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	cs, err := ph.caseStudyRepo.GetPublishedByID(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "get_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"caseStudy": publicView(cs)})
}
