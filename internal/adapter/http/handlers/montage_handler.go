package handlers

import (
	"log"
	"net/http"

	request "montage_service/internal/adapter/http/dto/request"
	response "montage_service/internal/adapter/http/dto/response"
	"montage_service/internal/usecase"
	"montage_service/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidMontagePayload = pkg.NewDomainErrorSimple("INVALID_MONTAGE_INPUT", "Invalid montage payload", http.StatusBadRequest)
)

// MontageHandler serves montage creation, reads and status changes.

type MontageHandler struct {
	montages    usecase.IMontageUseCase
	transitions usecase.ITransitionUseCase
	leads       usecase.ILeadConversionUseCase
}

func NewMontageHandler(montages usecase.IMontageUseCase, transitions usecase.ITransitionUseCase, leads usecase.ILeadConversionUseCase) *MontageHandler {
	return &MontageHandler{montages: montages, transitions: transitions, leads: leads}
}

// CreateMontage godoc
// @Summary      Create a montage
// @Description  Creates a montage in the manual-entry status and instantiates its checklist from the configured templates.
// @Tags         montages
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateMontageRequest  true  "Montage"
// @Success      201      {object}  response.CreateMontageResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /montages [post]
func (h *MontageHandler) CreateMontage(c *gin.Context) {
	var payload request.CreateMontageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidMontagePayload)
		return
	}

	m, items, err := h.montages.CreateMontage(c.Request.Context(), payload.ToNewMontage())
	if err != nil {
		log.Printf("[montage][handler] create failed err=%v", err)
		writeError(c, mapUseCaseError(err))
		return
	}

	c.JSON(http.StatusCreated, response.CreateMontageResponse{
		Montage:   response.FromMontage(m),
		Checklist: response.FromChecklist(items),
	})
}

// GetMontage godoc
// @Summary      Get a montage
// @Tags         montages
// @Produce      json
// @Param        id   path      string  true  "Montage ID"
// @Success      200  {object}  response.MontageResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /montages/{id} [get]
func (h *MontageHandler) GetMontage(c *gin.Context) {
	m, err := h.montages.GetMontage(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromMontage(m))
}

// ListChecklist godoc
// @Summary      List the checklist of a montage
// @Tags         montages
// @Produce      json
// @Param        id   path      string  true  "Montage ID"
// @Success      200  {array}   response.ChecklistItemResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /montages/{id}/checklist [get]
func (h *MontageHandler) ListChecklist(c *gin.Context) {
	items, err := h.montages.ListChecklist(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChecklist(items))
}

// ListAuditLog godoc
// @Summary      List the audit log of a montage
// @Tags         montages
// @Produce      json
// @Param        id   path      string  true  "Montage ID"
// @Success      200  {array}   response.AuditEntryResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /montages/{id}/audit [get]
func (h *MontageHandler) ListAuditLog(c *gin.Context) {
	entries, err := h.montages.ListAuditLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAuditLog(entries))
}

// ListStatuses godoc
// @Summary      Status catalog
// @Tags         statuses
// @Produce      json
// @Success      200  {array}  response.StatusResponse
// @Router       /statuses [get]
func (h *MontageHandler) ListStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromStatusCatalog(h.montages.StatusCatalog()))
}

// TransitionStatus godoc
// @Summary      Change the montage status
// @Description  Validates the target against the catalog and the personnel and document gates, then applies the change and its side effects.
// @Tags         montages
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Montage ID"
// @Param        payload  body      request.TransitionRequest  true  "Target status"
// @Success      200      {object}  response.MontageResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /montages/{id}/status [post]
func (h *MontageHandler) TransitionStatus(c *gin.Context) {
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	target, err := payload.ResolveStatus()
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	montageID := c.Param("id")
	log.Printf("[montage][handler] transition start montage_id=%s target=%s", montageID, target)
	m, err := h.transitions.Transition(c.Request.Context(), montageID, target)
	if err != nil {
		log.Printf("[montage][handler] transition failed montage_id=%s target=%s err=%v", montageID, target, err)
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromMontage(m))
}

// ConvertLead godoc
// @Summary      Convert a lead into a job
// @Description  Assigns the measurer and either advances to before_measurement or creates the measurement order and returns its payment link.
// @Tags         montages
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Montage ID"
// @Param        payload  body      request.ConvertLeadRequest  true  "Conversion"
// @Success      200      {object}  response.ConversionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Failure      503      {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /montages/{id}/convert [post]
func (h *MontageHandler) ConvertLead(c *gin.Context) {
	var payload request.ConvertLeadRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	montageID := c.Param("id")
	res, err := h.leads.AssignMeasurerAndAdvance(c.Request.Context(), montageID, payload.MeasurerID, payload.RequirePayment)
	if err != nil {
		log.Printf("[montage][handler] convert failed montage_id=%s err=%v", montageID, err)
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromConversionResult(res))
}
