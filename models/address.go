package models

import (
	"strings"
)

type Address struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// FullName returns the contact name as a single trimmed string.
func (a Address) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Lines joins the street lines into the single-field form the gateway expects.
func (a Address) Lines() string {
	if strings.TrimSpace(a.Line2) == "" {
		return a.Line1
	}
	return a.Line1 + ", " + a.Line2
}
