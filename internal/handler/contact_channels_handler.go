package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/growora/site-api/internal/config"
	"github.com/growora/site-api/internal/dto"
	"github.com/growora/site-api/internal/service"
	"github.com/growora/site-api/internal/utils"
)

// ContactChannelsHandler serves the static direct-contact affordances shown
// next to the inquiry form.
type ContactChannelsHandler struct {
	channels dto.ContactChannelsResponse
}

// NewContactChannelsHandler precomputes the channel list from configuration;
// none of it varies per request.
func NewContactChannelsHandler(cfg config.Config) *ContactChannelsHandler {
	link := service.ChatLinkBuilder{
		Number:   cfg.WhatsAppNumber,
		Greeting: cfg.WhatsAppGreeting,
	}

	return &ContactChannelsHandler{
		channels: dto.ContactChannelsResponse{
			WhatsAppURL: link.Build(),
			Phone:       cfg.ContactPhone,
			TelURL:      "tel:" + cfg.ContactPhone,
			Emails:      []string{cfg.BusinessInbox, cfg.SecondaryInbox},
		},
	}
}

// Register wires contact channel routes.
func (h *ContactChannelsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ContactChannelsHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "contact channels", h.channels)
}
