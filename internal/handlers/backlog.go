package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/middleware"
	"github.com/gamenight/backend/internal/models"
	"github.com/gamenight/backend/internal/selection"
	"github.com/gamenight/backend/internal/service"
)

// BacklogHandler serves the backlog list, item mutations, voting and picks.
type BacklogHandler struct {
	backlog *service.BacklogService
	engine  *selection.Engine
}

func NewBacklogHandler(backlog *service.BacklogService, engine *selection.Engine) *BacklogHandler {
	return &BacklogHandler{backlog: backlog, engine: engine}
}

func itemID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid item id")
	}
	return id, nil
}

// List handles GET /api/games. Works anonymously; voted flags are all
// false without a session.
func (h *BacklogHandler) List(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	items, err := h.backlog.List(c.Request.Context(), identity.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "backlog", items)
}

// Add handles POST /api/games.
func (h *BacklogHandler) Add(c *gin.Context) {
	var draft models.ItemDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		fail(c, apperr.Validationf("invalid item payload"))
		return
	}

	identity := middleware.GetIdentity(c)
	items, err := h.backlog.Add(c.Request.Context(), draft, identity)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "item added", items)
}

// Update handles PUT /api/games/:id.
func (h *BacklogHandler) Update(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		fail(c, err)
		return
	}
	var draft models.ItemDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		fail(c, apperr.Validationf("invalid item payload"))
		return
	}

	identity := middleware.GetIdentity(c)
	items, err := h.backlog.Update(c.Request.Context(), id, draft, identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "item updated", items)
}

// Remove handles DELETE /api/games/:id.
func (h *BacklogHandler) Remove(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		fail(c, err)
		return
	}

	identity := middleware.GetIdentity(c)
	items, err := h.backlog.Remove(c.Request.Context(), id, identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "item removed", items)
}

// Vote handles POST /api/games/:id/vote.
func (h *BacklogHandler) Vote(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		fail(c, err)
		return
	}

	identity := middleware.GetIdentity(c)
	items, err := h.backlog.Upvote(c.Request.Context(), id, identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "vote recorded", items)
}

// Pick handles POST /api/games/pick?mode=majority|lottery. The chosen item
// comes back already transitioned to active.
func (h *BacklogHandler) Pick(c *gin.Context) {
	strategy, err := selection.ParseStrategy(c.DefaultQuery("mode", string(selection.StrategyMajority)))
	if err != nil {
		fail(c, err)
		return
	}

	item, err := h.engine.Pick(c.Request.Context(), strategy)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "next game picked", item)
}
