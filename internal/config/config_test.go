package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GROWORA_APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "GROWORA Site API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "https://api.emailjs.com", cfg.EmailJSBaseURL)
	require.Equal(t, "info@groworaindia.com", cfg.BusinessInbox)
	require.Equal(t, "GROWORA Team", cfg.BusinessName)
	require.Equal(t, "919967514905", cfg.WhatsAppNumber)
	require.Equal(t, "growora.inquiries", cfg.NATSSubject)
	require.Positive(t, cfg.IdempotencyTTL)
	require.Positive(t, cfg.DispatchTimeout)
}

func TestLoadFailsFastOnMissingCredentialsOutsideDevelopment(t *testing.T) {
	t.Setenv("GROWORA_APP_ENV", "production")
	t.Setenv("GROWORA_EMAILJS_SERVICE_ID", "service_abc")
	t.Setenv("GROWORA_EMAILJS_TEMPLATE_ID", "template_notify")
	// Autoreply template and public key deliberately absent.

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "GROWORA_EMAILJS_AUTOREPLY_TEMPLATE_ID")
	require.Contains(t, err.Error(), "GROWORA_EMAILJS_PUBLIC_KEY")
}

func TestLoadAcceptsCompleteCredentials(t *testing.T) {
	t.Setenv("GROWORA_APP_ENV", "production")
	t.Setenv("GROWORA_EMAILJS_SERVICE_ID", "service_abc")
	t.Setenv("GROWORA_EMAILJS_TEMPLATE_ID", "template_notify")
	t.Setenv("GROWORA_EMAILJS_AUTOREPLY_TEMPLATE_ID", "template_ack")
	t.Setenv("GROWORA_EMAILJS_PUBLIC_KEY", "public_xyz")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.DispatchConfigured())
}

func TestHTTPAddressKeepsExplicitColon(t *testing.T) {
	cfg := Config{AppPort: ":9000"}
	require.Equal(t, ":9000", cfg.HTTPAddress())
}
