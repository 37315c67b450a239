package types

import (
	"time"

	"github.com/acmchapter/recruitment-api/internal/security"
)

type (
	// SubmitResponse aggregates per-domain outcomes. Success means at least
	// one domain row was inserted; Errors lists the domains that were not.
	SubmitResponse struct {
		Success bool     `json:"success"`
		Message string   `json:"message,omitempty"`
		Data    []any    `json:"data,omitempty"`
		Errors  []string `json:"errors,omitempty"`
	}

	CheckResponse struct {
		Success bool     `json:"success"`
		Domains []string `json:"domains"`
		Count   int      `json:"count"`
	}

	AuthResponse struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}

	AuthStatusResponse struct {
		Authenticated bool `json:"authenticated"`
	}

	SubmissionsResponse struct {
		Success bool `json:"success"`
		Data    any  `json:"data"`
	}

	CSRFResponse struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}

	// SecurityData reports the rejection counters behind the admin security
	// dashboard.
	SecurityData struct {
		ErrorStats     security.Stats `json:"error_stats"`
		SecurityStatus string         `json:"security_status"`
		LastUpdated    time.Time      `json:"last_updated"`
	}

	SecurityResponse struct {
		Data    SecurityData `json:"data"`
		Success bool         `json:"success"`
	}
)
