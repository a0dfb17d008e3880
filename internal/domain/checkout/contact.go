package checkout

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyContactName = errors.New("contact name is required")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidPhone     = errors.New("invalid phone number format")
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^(\+84|0)[0-9]{9}$`)
)

type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func NewContactInfo(name, phone, email string) (ContactInfo, error) {
	c := ContactInfo{
		Name:  strings.TrimSpace(name),
		Phone: strings.ReplaceAll(strings.TrimSpace(phone), " ", ""),
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
	if err := c.Validate(); err != nil {
		return ContactInfo{}, err
	}
	return c, nil
}

func (c ContactInfo) Validate() error {
	if c.Name == "" {
		return ErrEmptyContactName
	}
	if !emailRegex.MatchString(c.Email) {
		return ErrInvalidEmail
	}
	if !phoneRegex.MatchString(c.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

func (c ContactInfo) IsZero() bool {
	return c == ContactInfo{}
}
