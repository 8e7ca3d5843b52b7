package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AVKharkova/foodgram/internal/service"
)

// ShortLinkHandler redirects /s/{code} to the canonical recipe URL.
type ShortLinkHandler struct {
	shortLinks *service.ShortLinkService
}

func NewShortLinkHandler(shortLinks *service.ShortLinkService) *ShortLinkHandler {
	return &ShortLinkHandler{shortLinks: shortLinks}
}

func (h *ShortLinkHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/s/:code", h.Redirect)
}

func (h *ShortLinkHandler) Redirect(c *gin.Context) {
	recipeID, err := h.shortLinks.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/api/v1/recipes/"+recipeID.String())
}
