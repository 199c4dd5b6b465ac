package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dealpulse/insight-engine/errors"
	meetingDTO "github.com/dealpulse/insight-engine/internal/adapter/dto/meeting"
	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/usecase/insights"
	"github.com/dealpulse/insight-engine/internal/usecase/ledger"
)

// Insight serves the read-side views of an opportunity: the deduplicated
// timeline, ranked field aggregations, serialized ledgers and the current
// next step
type Insight struct {
	views   *insights.Service
	ledgers *ledger.Service
	logger  *zap.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(views *insights.Service, ledgers *ledger.Service, logger *zap.Logger) *Insight {
	return &Insight{
		views:   views,
		ledgers: ledgers,
		logger:  logger,
	}
}

// Timeline handles GET /opportunities/:id/timeline
func (h *Insight) Timeline(c echo.Context) error {
	opportunityID, err := parseOpportunityID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.views.Timeline(c.Request().Context(), opportunityID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, meetingDTO.ToTimelineResponse(result))
}

// Ranked handles GET /opportunities/:id/insights/:field
func (h *Insight) Ranked(c echo.Context) error {
	opportunityID, err := parseOpportunityID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	field, err := entities.ParseInsightField(c.Param("field"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	ranked, err := h.views.Ranked(c.Request().Context(), opportunityID, field)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resp := meetingDTO.RankedInsightsResponse{
		Field:    string(field),
		Insights: ranked,
	}
	return HandleSuccess(h.logger, c, http.StatusOK, resp)
}

// Ledger handles GET /opportunities/:id/ledger/:field. An opportunity with no
// recorded history serves the empty ledger form rather than a 404.
func (h *Insight) Ledger(c echo.Context) error {
	opportunityID, err := parseOpportunityID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	field, err := entities.ParseInsightField(c.Param("field"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	text, err := h.ledgers.Serialized(c.Request().Context(), opportunityID, field)
	if stdErrors.Is(err, entities.ErrLedgerNotFound) {
		text = entities.NewInsightLedger(opportunityID, field).Serialize()
		err = nil
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resp := meetingDTO.LedgerResponse{
		Field:  string(field),
		Ledger: text,
	}
	return HandleSuccess(h.logger, c, http.StatusOK, resp)
}

// NextStep handles GET /opportunities/:id/next-step
func (h *Insight) NextStep(c echo.Context) error {
	opportunityID, err := parseOpportunityID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	next, err := h.views.NextStep(c.Request().Context(), opportunityID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, meetingDTO.NextStepResponse{NextStep: next})
}
