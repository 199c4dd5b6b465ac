package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dealpulse/insight-engine/errors"
	contactDTO "github.com/dealpulse/insight-engine/internal/adapter/dto/contact"
	"github.com/dealpulse/insight-engine/internal/usecase/contacts"
)

// Contact handles contact duplicate-check HTTP requests
type Contact struct {
	detector *contacts.Service
	logger   *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(detector *contacts.Service, logger *zap.Logger) *Contact {
	return &Contact{
		detector: detector,
		logger:   logger,
	}
}

// CheckDuplicates handles POST /opportunities/:id/contacts/check-duplicates.
// Reports come back in request order, one per candidate.
func (h *Contact) CheckDuplicates(c echo.Context) error {
	opportunityID, err := parseOpportunityID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req contactDTO.CheckDuplicatesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	candidates := make([]contacts.Candidate, 0, len(req.Candidates))
	for _, cand := range req.Candidates {
		candidates = append(candidates, contacts.Candidate{
			FirstName: cand.FirstName,
			LastName:  cand.LastName,
			Email:     cand.Email,
		})
	}

	reports, err := h.detector.CheckBatch(c.Request().Context(), opportunityID, candidates)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, contactDTO.ToCheckDuplicatesResponse(reports))
}
