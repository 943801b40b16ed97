package models

import "time"

// VerificationToken pairs an email with a live OTP and its expiry. It has no
// foreign key to users: the user may not exist yet when the token is issued.
type VerificationToken struct {
	ID         string
	Identifier string
	Token      string
	Expires    time.Time
	CreatedAt  time.Time
}
