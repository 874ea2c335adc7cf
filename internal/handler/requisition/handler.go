package requisition

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/pkg/errors"
	"github.com/reqscribe/requisition-api/pkg/httputil"
)

// Service generates a filled requisition and returns its file path.
type Service interface {
	Generate(ctx context.Context, doctorID, patientID int64, lines []string) (string, error)
}

type Handler struct {
	service  Service
	patients model.IDSet
	doctors  model.IDSet
}

func NewHandler(service Service, validIDs *model.ValidIDs) *Handler {
	return &Handler{
		service:  service,
		patients: model.NewIDSet(validIDs.Patients),
		doctors:  model.NewIDSet(validIDs.Doctors),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/requisitions", h.GenerateRequisition)
}

// GenerateRequisition handles one transcript submission and streams the
// filled document back as an attachment.
func (h *Handler) GenerateRequisition(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid request body", err))
		return
	}

	patientID, perr := model.CoerceID(req.PatientID)
	doctorID, derr := model.CoerceID(req.DoctorID)
	if perr != nil || derr != nil {
		httputil.RespondWithError(c,
			errors.Validation("patient ID and doctor ID must be integers", nil))
		return
	}

	// ids are checked against the preloaded sets before any remote fetch;
	// every invalid id is reported in one message
	var invalid []string
	if !h.patients.Contains(patientID) {
		invalid = append(invalid, fmt.Sprintf("invalid patient ID: %d", patientID))
	}
	if !h.doctors.Contains(doctorID) {
		invalid = append(invalid, fmt.Sprintf("invalid doctor ID: %d", doctorID))
	}
	if len(invalid) > 0 {
		httputil.RespondWithError(c, errors.Validation(strings.Join(invalid, "; "), nil))
		return
	}

	log.Debug().
		Int64("patient_id", patientID).
		Int64("doctor_id", doctorID).
		Int("lines", len(req.Inputs)).
		Msg("transcript received")

	path, err := h.service.Generate(c.Request.Context(), doctorID, patientID, req.Inputs)
	if err != nil {
		// attached for the error middleware's request-scoped logging
		_ = c.Error(err)
		httputil.RespondWithError(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
