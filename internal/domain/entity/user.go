package entity

import (
	"fmt"
	"strings"
	"time"
)

// UserStatus is a crew member's availability
type UserStatus string

const (
	UserStatusActive  UserStatus = "Active"
	UserStatusStandby UserStatus = "Standby"
	UserStatusOnLeave UserStatus = "On Leave"
)

// Valid reports whether s is a known status
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusStandby, UserStatusOnLeave:
		return true
	}
	return false
}

// Certification is a licence or training record with an expiry date
type Certification struct {
	Name   string    `json:"name" toml:"name"`
	Expiry time.Time `json:"expiry" toml:"expiry"`
}

// User represents a crew roster member
type User struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Role            Role              `json:"role"`
	JobTitle        string            `json:"jobTitle"`
	EmployeeID      string            `json:"employeeId"` // unique across the roster
	Base            string            `json:"base"`
	Contact         string            `json:"contact"`
	Email           string            `json:"email"`
	ProfileImageURL string            `json:"profileImageUrl"`
	Status          UserStatus        `json:"status"`
	Compliance      map[string]string `json:"compliance"` // agency -> status
	Certifications  []Certification   `json:"certifications"`
}

// Clone returns a deep copy of u
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Compliance = make(map[string]string, len(u.Compliance))
	for k, v := range u.Compliance {
		c.Compliance[k] = v
	}
	c.Certifications = append([]Certification(nil), u.Certifications...)
	return &c
}

// Validate checks the fields an admin edit may touch
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: unknown role %d", ErrInvalidInput, u.Role)
	}
	if !u.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, u.Status)
	}
	return nil
}

// NewCrewMember is the admin "add crew" payload. The store assigns id,
// employee id, image and empty compliance/certifications.
type NewCrewMember struct {
	Name     string
	Role     Role
	JobTitle string
	Base     string
	Contact  string
	Email    string
	Status   UserStatus
}
