package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/olegtsov/notify-dispatcher/internal/api/dto"
	"github.com/olegtsov/notify-dispatcher/internal/api/respond"
	"github.com/olegtsov/notify-dispatcher/internal/model"
	"github.com/olegtsov/notify-dispatcher/internal/repository/recipient"
	notifsvc "github.com/olegtsov/notify-dispatcher/internal/service/notification"
)

// notificationService defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	Submit(ctx context.Context, req notifsvc.SubmitRequest) (model.StatusRecord, error)
	Status(ctx context.Context, id string) (model.StatusRecord, error)
	Metrics(ctx context.Context) (notifsvc.Metrics, error)
}

// Handler handles HTTP requests for submitting notifications, querying
// their status and inspecting the pipeline.
type Handler struct {
	service   notificationService
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(s notificationService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// Create handles HTTP POST requests to submit a notification.
func (h *Handler) Create(c *ginext.Context) {
	var req dto.CreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	rec, err := h.service.Submit(c.Request.Context(), notifsvc.SubmitRequest{
		Channel:      req.Channel,
		UserID:       req.UserID,
		TemplateCode: req.TemplateCode,
		Variables:    req.Variables,
		RequestID:    req.RequestID,
		Priority:     req.Priority,
	})
	if err != nil {
		switch {
		case errors.Is(err, notifsvc.ErrInvalidChannel):
			zlog.Logger.Warn().Err(err).Msg("invalid channel")
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid channel"))
		case errors.Is(err, recipient.ErrRecipientNotFound):
			zlog.Logger.Warn().Err(err).Str("user_id", req.UserID).Msg("recipient not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("recipient not found"))
		case errors.Is(err, notifsvc.ErrBrokerUnavailable):
			zlog.Logger.Error().Err(err).Msg("broker unavailable")
			respond.Fail(c.Writer, http.StatusServiceUnavailable, fmt.Errorf("service temporarily unavailable"))
		default:
			zlog.Logger.Error().Err(err).Msg("failed to submit notification")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		}
		return
	}

	respond.Created(c.Writer, dto.CreateResponse{
		NotificationID: rec.NotificationID.String(),
		RequestID:      rec.RequestID,
		Status:         rec.Status,
	})
}

// GetStatus handles HTTP GET requests to retrieve the status of a
// notification by notification id or request id.
func (h *Handler) GetStatus(c *ginext.Context) {
	id := c.Param("id")
	if id == "" {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	rec, err := h.service.Status(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notifsvc.ErrStatusNotFound) {
			zlog.Logger.Warn().Str("id", id).Msg("notification not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id).Msg("failed to get notification status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, rec)
}

// GetMetrics handles HTTP GET requests for queue depths and breaker states.
func (h *Handler) GetMetrics(c *ginext.Context) {
	metrics, err := h.service.Metrics(c.Request.Context())
	if err != nil {
		if errors.Is(err, notifsvc.ErrBrokerUnavailable) {
			zlog.Logger.Error().Err(err).Msg("broker unavailable")
			respond.Fail(c.Writer, http.StatusServiceUnavailable, fmt.Errorf("service temporarily unavailable"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to collect metrics")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, metrics)
}
