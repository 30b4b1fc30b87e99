package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker decides whether a commenter's email address is trusted. Entries
// are either domains ("example.com") or full addresses ("jane@example.com").
type Checker struct {
	domains   map[string]bool
	addresses map[string]bool
	logger    *zap.Logger
}

// NewChecker creates a new whitelist checker
func NewChecker(entries []string, logger *zap.Logger) *Checker {
	c := &Checker{
		domains:   make(map[string]bool),
		addresses: make(map[string]bool),
		logger:    logger,
	}

	var normalized []string
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		e = strings.TrimPrefix(e, "@")
		if e == "" {
			continue
		}
		if strings.Contains(e, "@") {
			c.addresses[e] = true
		} else {
			c.domains[e] = true
		}
		normalized = append(normalized, e)
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized trusted commenter list", zap.Strings("entries", normalized))
	}

	return c
}

// IsWhitelisted checks if the address, or its domain, is trusted
func (c *Checker) IsWhitelisted(email string) bool {
	if len(c.domains) == 0 && len(c.addresses) == 0 {
		return false
	}

	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	if c.addresses[email] || c.domains[email[at+1:]] {
		if c.logger != nil {
			c.logger.Debug("Commenter is trusted", zap.String("email", email))
		}
		return true
	}

	return false
}
