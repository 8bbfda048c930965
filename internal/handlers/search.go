package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/catalog"
)

// SearchHandler proxies free-text queries to the external catalog.
type SearchHandler struct {
	catalog *catalog.Client
}

func NewSearchHandler(client *catalog.Client) *SearchHandler {
	return &SearchHandler{catalog: client}
}

// Search handles GET /api/search?q=.
func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		fail(c, apperr.Validationf("query parameter q is required"))
		return
	}

	results, err := h.catalog.Search(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "search results", results)
}
