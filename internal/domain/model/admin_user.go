package model

import "time"

type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
	TOTPSecret   string
	CreatedAt    time.Time
}
