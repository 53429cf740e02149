package dto

import "time"

type StatusOutput struct {
	Present   bool
	Opaque    bool
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}
