package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	log "github.com/sirupsen/logrus"
)

// ConsultationHandler books sessions through the remote backend.
type ConsultationHandler struct {
	repo   port.ConsultationRepository
	logger *log.Entry
}

// NewConsultationHandler accepts a nil repository when no remote backend is
// configured; bookings are then refused with 503.
func NewConsultationHandler(repo port.ConsultationRepository, logger *log.Entry) *ConsultationHandler {
	return &ConsultationHandler{repo: repo, logger: logger}
}

type ConsultationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

type consultationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateConsultation handles POST /api/v1/consultations
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	if h.repo == nil {
		Error(c, http.StatusServiceUnavailable, "REMOTE_NOT_CONFIGURED", "remote backend is not configured")
		return
	}

	var req ConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	booked, err := h.repo.Submit(c.Request.Context(), domain.Consultation{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Topic:   strings.TrimSpace(req.Topic),
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) || errors.Is(err, domain.ErrEmailRequired) {
			Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		h.logger.WithError(err).Error("repo.Submit")
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to book consultation")
		return
	}

	Success(c, http.StatusCreated, "Consultation booked", consultationResponse{
		ID:        booked.ID,
		Name:      booked.Name,
		Email:     booked.Email,
		Topic:     booked.Topic,
		CreatedAt: booked.CreatedAt,
	})
}
