package model

import "github.com/google/uuid"

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool   { return p.Role == "ADMIN" }
func (p Principal) IsManager() bool { return p.Role == "MANAGER" }

// CanTriggerRuns reports whether the caller may start a scoring run.
// Everyone authenticated may read runs and download reports.
func (p Principal) CanTriggerRuns() bool {
	return p.IsAdmin() || p.IsManager()
}
