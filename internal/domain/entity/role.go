package entity

import (
	"fmt"
	"strings"
)

// Role is a crew member's role. Roles drive navigation visibility.
type Role uint8

const (
	RolePilot Role = iota
	RoleCabinCrew
	RoleGroundStaff
	RoleAdmin
)

var roleNames = [...]string{
	RolePilot:       "Pilot",
	RoleCabinCrew:   "Cabin Crew",
	RoleGroundStaff: "Ground Staff",
	RoleAdmin:       "Admin",
}

// AllRoles lists every role in declaration order
func AllRoles() []Role {
	return []Role{RolePilot, RoleCabinCrew, RoleGroundStaff, RoleAdmin}
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// Valid reports whether r is one of the declared roles
func (r Role) Valid() bool {
	return int(r) < len(roleNames)
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: unknown role %d", ErrInvalidInput, r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRole accepts the display name ("Cabin Crew") or its compact form ("CabinCrew"),
// case-insensitively.
func ParseRole(s string) (Role, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for i, name := range roleNames {
		if strings.ToLower(strings.ReplaceAll(name, " ", "")) == key {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

// RoleSet is a bitset of roles
type RoleSet uint8

// RoleSetOf builds a set from the given roles
func RoleSetOf(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= 1 << r
	}
	return s
}

// AllRoleSet contains every role
func AllRoleSet() RoleSet {
	return RoleSetOf(AllRoles()...)
}

// Has reports whether r is a member of s
func (s RoleSet) Has(r Role) bool {
	return r.Valid() && s&(1<<r) != 0
}

// Roles returns the members of s in declaration order
func (s RoleSet) Roles() []Role {
	var out []Role
	for _, r := range AllRoles() {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s RoleSet) String() string {
	names := make([]string, 0, 4)
	for _, r := range s.Roles() {
		names = append(names, r.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
