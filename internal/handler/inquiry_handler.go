package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/growora/site-api/internal/dto"
	"github.com/growora/site-api/internal/service"
	"github.com/growora/site-api/internal/utils"
)

// Copy shown to the visitor. The failure message deliberately does not say
// which of the two messages failed; it points at the direct channel instead.
const (
	inquiryAcceptedMessage = "We've received your inquiry and will respond within 24 hours."
	inquiryFailedMessage   = "We couldn't send your inquiry. Please try again or contact us directly at info@groworaindia.com."
)

// InquiryHandler handles inquiry form submissions.
type InquiryHandler struct {
	service service.InquiryService
	logger  zerolog.Logger
}

// NewInquiryHandler constructs an inquiry handler.
func NewInquiryHandler(service service.InquiryService, logger zerolog.Logger) *InquiryHandler {
	return &InquiryHandler{
		service: service,
		logger:  logger.With().Str("component", "inquiry_handler").Logger(),
	}
}

// Register wires inquiry routes.
func (h *InquiryHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *InquiryHandler) submit(c *fiber.Ctx) error {
	var payload dto.InquiryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		switch {
		case errors.Is(err, service.ErrInquirySpam):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.As(err, &validationErrors):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid inquiry: "+validationErrors.Error())
		case errors.Is(err, service.ErrSubmissionInFlight):
			return utils.SendError(c, fiber.StatusConflict, "a submission is already being processed")
		case errors.Is(err, service.ErrDispatchFailed):
			return utils.SendError(c, fiber.StatusBadGateway, inquiryFailedMessage)
		default:
			h.logger.Error().Err(err).Msg("failed to process inquiry submission")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit inquiry")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, inquiryAcceptedMessage, response)
}
