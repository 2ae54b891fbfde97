package service

import "github.com/growora/site-api/internal/form"

// Placeholder text substituted for empty optional fields in the outgoing
// notification. The stored form value itself is never rewritten.
const (
	placeholderCompany  = "Not provided"
	placeholderProduct  = "Not specified"
	placeholderQuantity = "Not specified"
	placeholderMessage  = "No message"
)

// Composer builds the two outgoing message payloads from a form snapshot.
// Both methods are deterministic and free of side effects.
type Composer struct {
	// BusinessInbox is the fixed destination of every notification.
	BusinessInbox string
	// BusinessName is the fixed sender display name on acknowledgements.
	BusinessName string
}

// Notification maps the full inquiry onto the business-facing template
// parameters, substituting placeholders for any empty optional field.
func (c Composer) Notification(f form.InquiryForm) map[string]string {
	return map[string]string{
		"from_name":  f.Name,
		"from_email": f.Email,
		"company":    orPlaceholder(f.Company, placeholderCompany),
		"product":    orPlaceholder(f.Product, placeholderProduct),
		"quantity":   orPlaceholder(f.Quantity, placeholderQuantity),
		"message":    orPlaceholder(f.Message, placeholderMessage),
		"to_email":   c.BusinessInbox,
	}
}

// Acknowledgement maps the visitor's own name and address as the destination.
// It deliberately carries no inquiry detail; the acknowledgement is generic,
// not a copy of the submission.
func (c Composer) Acknowledgement(f form.InquiryForm) map[string]string {
	return map[string]string{
		"to_name":   f.Name,
		"to_email":  f.Email,
		"from_name": c.BusinessName,
	}
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
