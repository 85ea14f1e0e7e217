package model

import "time"

type Photo struct {
	ID        string
	CreatedAt time.Time
	Name      string
	Caption   string
	PhotoURL  string
	IsPublic  bool
}
