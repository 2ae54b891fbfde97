package dto

import "github.com/growora/site-api/internal/form"

// InquiryRequest represents the payload posted by the inquiry form. Name and
// email are the only required fields; product is constrained to the commodity
// catalogue the business actually exports.
type InquiryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=128"`
	Email    string `json:"email" validate:"required,email,max=160"`
	Company  string `json:"company" validate:"omitempty,max=160"`
	Product  string `json:"product" validate:"omitempty,oneof=rice sugar wheat maize pulses spices multiple"`
	Quantity string `json:"quantity" validate:"omitempty,max=64"`
	Message  string `json:"message" validate:"omitempty,max=4000"`
	// Honeypot must stay empty; bots that fill it are dropped silently.
	Honeypot string `json:"_note,omitempty"`
}

// Form converts the request into the workflow's form record.
func (r InquiryRequest) Form() form.InquiryForm {
	return form.InquiryForm{
		Name:     r.Name,
		Email:    r.Email,
		Company:  r.Company,
		Product:  r.Product,
		Quantity: r.Quantity,
		Message:  r.Message,
	}
}

// InquiryResponse is returned to the visitor after a submission attempt.
type InquiryResponse struct {
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
}

// ContactChannelsResponse lists the static direct-contact affordances the
// rendering layer displays alongside the form. The server only computes the
// data; opening a channel is the browser's job.
type ContactChannelsResponse struct {
	WhatsAppURL string   `json:"whatsapp_url"`
	Phone       string   `json:"phone"`
	TelURL      string   `json:"tel_url"`
	Emails      []string `json:"emails"`
}
