package handlers

import (
	"log"
	"net/http"

	request "montage_service/internal/adapter/http/dto/request"
	response "montage_service/internal/adapter/http/dto/response"
	"montage_service/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ChecklistHandler toggles checklist items. A toggle succeeds even when the
// coupled status change is blocked; the blocked transitions are reported in
// the response.

type ChecklistHandler struct {
	usecase usecase.IChecklistUseCase
}

func NewChecklistHandler(uc usecase.IChecklistUseCase) *ChecklistHandler {
	return &ChecklistHandler{usecase: uc}
}

// ToggleChecklistItem godoc
// @Summary      Toggle a checklist item
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Montage ID"
// @Param        item_id  path      string                          true  "Checklist item ID"
// @Param        payload  body      request.ToggleChecklistRequest  true  "Completion"
// @Success      200      {object}  response.ToggleChecklistResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /montages/{id}/checklist/{item_id} [patch]
func (h *ChecklistHandler) ToggleChecklistItem(c *gin.Context) {
	var payload request.ToggleChecklistRequest
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Completed == nil {
		writeError(c, errInvalidRequest)
		return
	}

	montageID, itemID := c.Param("id"), c.Param("item_id")
	res, err := h.usecase.ToggleChecklistItem(c.Request.Context(), montageID, itemID, *payload.Completed)
	if err != nil {
		log.Printf("[checklist][handler] toggle failed montage_id=%s item_id=%s err=%v", montageID, itemID, err)
		writeError(c, mapUseCaseError(err))
		return
	}
	if blocked := res.Blocked(); len(blocked) > 0 {
		log.Printf("[checklist][handler] toggle applied with blocked transitions montage_id=%s blocked=%d", montageID, len(blocked))
	}
	c.JSON(http.StatusOK, response.FromToggleResult(res))
}
