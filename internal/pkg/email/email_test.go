package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megamart/hr-backend-go/internal/config"
)

// An empty SMTP host makes Send a logged no-op, so the reminder path can be
// exercised without a mail server.
func newUnconfiguredService(t *testing.T) EmailService {
	t.Helper()
	svc, err := NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)
	return svc
}

func TestSendCheckoutReminderRejectsInvalidRecipient(t *testing.T) {
	svc := newUnconfiguredService(t)
	shiftEnd := time.Date(2024, time.March, 4, 18, 30, 0, 0, time.UTC)

	err := svc.SendCheckoutReminder(context.Background(), "not-an-address", "Priya Nair", shiftEnd)
	assert.ErrorContains(t, err, "invalid recipient address")

	err = svc.SendCheckoutReminder(context.Background(), "priya@megamart.example", "Priya Nair", shiftEnd)
	assert.NoError(t, err)
}
