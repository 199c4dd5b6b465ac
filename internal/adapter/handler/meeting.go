package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dealpulse/insight-engine/errors"
	meetingDTO "github.com/dealpulse/insight-engine/internal/adapter/dto/meeting"
	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/usecase/reconcile"
)

// Meeting handles meeting ingest HTTP requests
type Meeting struct {
	reconciler *reconcile.Service
	logger     *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(reconciler *reconcile.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		reconciler: reconciler,
		logger:     logger,
	}
}

// Ingest handles POST /meetings. One request is one parser delivery; a
// redelivered source id is acknowledged without changing the ledgers.
func (h *Meeting) Ingest(c echo.Context) error {
	var req meetingDTO.IngestMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	opportunityID, err := uuid.Parse(req.OpportunityID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("opportunity_id must be a valid uuid"))
	}

	delivery := reconcile.Delivery{
		OpportunityID:   opportunityID,
		SourceID:        req.SourceID,
		Source:          req.Source,
		Title:           req.Title,
		MeetingAt:       req.MeetingDate,
		CalendarEventID: req.CalendarEventID,
		PainPoints:      req.PainPoints,
		Goals:           req.Goals,
		NextSteps:       req.NextSteps,
		Quotes:          req.Quotes,
		Objections:      req.Objections,
		Metrics:         req.Metrics,
		Rationale:       req.Rationale,
	}
	if req.Risk != nil {
		delivery.Risk = &entities.RiskAssessment{
			Level:     req.Risk.Level,
			Summary:   req.Risk.Summary,
			Blockers:  req.Risk.Blockers,
			Champions: req.Risk.Champions,
		}
	}

	record, err := h.reconciler.Ingest(c.Request().Context(), delivery)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := meetingDTO.IngestMeetingResponse{
		MeetingID: record.ID.String(),
		SourceID:  record.SourceID,
		Source:    record.Source.String(),
		Status:    "reconciled",
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, resp)
}
