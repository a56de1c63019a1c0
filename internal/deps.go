package internal

import (
	"time"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal/service"
	"whispr/feedback-api/pkg/security"
)

// Deps carries everything the handlers need. Built once in the router,
// tests construct one by hand with fakes.
type Deps struct {
	DB      db.Store
	Argon   *security.ArgonHash
	Mailer  service.Mailer
	Suggest service.Suggester

	// Now is the clock used for OTP expiry and message timestamps,
	// injectable so expiry logic is deterministic in tests.
	Now func() time.Time
}

func (d *Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}

	return time.Now()
}
