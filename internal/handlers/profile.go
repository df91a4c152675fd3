package handlers

import (
	"net/http"
	"strings"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/alimgiray/ghdash/internal/middleware"
	"github.com/alimgiray/ghdash/internal/models"
	"github.com/alimgiray/ghdash/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProfileHandler struct {
	profileService *services.ProfileService
	exportService  *services.ExportService
}

func NewProfileHandler(profileService *services.ProfileService, exportService *services.ExportService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		exportService:  exportService,
	}
}

// filterQuery holds the raw filter inputs; min_stars stays a string so bad input means 0
type filterQuery struct {
	Name     string `form:"name"`
	Language string `form:"language"`
	MinStars string `form:"min_stars"`
}

func (q filterQuery) criteria() models.FilterCriteria {
	criteria := models.FilterCriteria{
		Name:     strings.TrimSpace(q.Name),
		Language: strings.TrimSpace(q.Language),
		MinStars: models.ParseMinStars(q.MinStars),
	}
	if criteria.Language == "" {
		criteria.Language = models.LanguageAll
	}
	return criteria
}

// GetProfile runs a primary query and returns the unfiltered view
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	sess := middleware.ViewSession(c)

	profile, err := h.profileService.Search(c.Request.Context(), sess, c.Param("handle"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.profileService.View(profile, models.DefaultCriteria()))
}

// FilterRepositories filters the displayed result set without fetching
func (h *ProfileHandler) FilterRepositories(c *gin.Context) {
	var query filterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, apperror.ValidationFailed(err.Error()))
		return
	}

	view, err := h.profileService.CurrentView(middleware.ViewSession(c), query.criteria())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ClearFilters resets every criterion to its default
func (h *ProfileHandler) ClearFilters(c *gin.Context) {
	view, err := h.profileService.CurrentView(middleware.ViewSession(c), models.DefaultCriteria())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ExportRepositories downloads the filtered view as a workbook
func (h *ProfileHandler) ExportRepositories(c *gin.Context) {
	var query filterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, apperror.ValidationFailed(err.Error()))
		return
	}

	view, err := h.profileService.CurrentView(middleware.ViewSession(c), query.criteria())
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := h.exportService.Workbook(view)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.exportService.FileName(view.User.Login)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
