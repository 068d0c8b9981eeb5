package observability

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jlbbacs/quick-registration/internal/logging"
)

// Logger returns the global logger instance
func Logger() *zap.Logger {
	return logging.Logger
}

// MaskEmail masks the local part of an email address for logging
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
