package models

import (
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validateStruct(p)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}
