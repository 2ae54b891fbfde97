package service

import (
	"net/url"
	"strings"
)

// ChatLinkBuilder produces the WhatsApp deep link offered as the alternate
// inquiry channel. The message is a canned opener; no visitor input is ever
// interpolated into the link.
type ChatLinkBuilder struct {
	Number   string
	Greeting string
}

// Build returns the wa.me URL with the greeting percent-encoded as the text
// query parameter. Opening the link is a rendering-layer concern.
func (b ChatLinkBuilder) Build() string {
	// wa.me expects %20 for spaces, not the + form QueryEscape produces.
	encoded := strings.ReplaceAll(url.QueryEscape(b.Greeting), "+", "%20")
	return "https://wa.me/" + b.Number + "?text=" + encoded
}
