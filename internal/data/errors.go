package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Login audit repository sentinels.
	ErrAuditLoginRequired   = errors.New("login is required")
	ErrAuditOutcomeRequired = errors.New("outcome is required")
)
