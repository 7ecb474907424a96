package supplier

import (
	"net/mail"
	"strings"
	"time"

	"culinary-be/internal/validation"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Supplier is a vendor items are sourced from. Status is an open string.
type Supplier struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Contact   *string    `json:"contact"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	Category  *string    `json:"category"`
	LastOrder *time.Time `json:"last_order"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s *Supplier) IsActive() bool {
	return s.Status == StatusActive
}

// Draft holds the editable fields of a supplier. last_order is not editable.
type Draft struct {
	Name     string  `json:"name"`
	Contact  *string `json:"contact"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Category *string `json:"category"`
	Status   string  `json:"status"`
}

func (d Draft) Validate() error {
	errs := validation.Errors{}

	if strings.TrimSpace(d.Name) == "" {
		errs.Add("name", "Name is required")
	}
	if d.Email != nil && strings.TrimSpace(*d.Email) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(*d.Email)); err != nil {
			errs.Add("email", "Invalid email address")
		}
	}

	return errs.Err()
}

func (d Draft) normalized() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Status = strings.TrimSpace(d.Status)
	if d.Status == "" {
		d.Status = StatusActive
	}
	d.Contact = trimOptional(d.Contact)
	d.Phone = trimOptional(d.Phone)
	d.Email = trimOptional(d.Email)
	d.Category = trimOptional(d.Category)
	return d
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
