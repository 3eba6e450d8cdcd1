package models

import "strings"

// Role is the authorization role of a [User].
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

var roleBits = map[Role]RoleSet{
	RoleUser:      1 << 0,
	RoleGuide:     1 << 1,
	RoleLeadGuide: 1 << 2,
	RoleAdmin:     1 << 3,
}

// IsValid checks if the role is one of the predefined roles.
func (r Role) IsValid() bool {
	_, ok := roleBits[r]
	return ok
}

// AllRoles returns every predefined role.
func AllRoles() []Role {
	return []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin}
}

// RoleSet is a finite set of roles encoded as a bit mask.
type RoleSet uint8

// NewRoleSet builds a RoleSet from the given roles. Unknown roles are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	var set RoleSet
	for _, role := range roles {
		set |= roleBits[role]
	}
	return set
}

// Contains reports whether role is a member of the set.
func (s RoleSet) Contains(role Role) bool {
	bit, ok := roleBits[role]
	if !ok {
		return false
	}
	return s&bit != 0
}

// IsEmpty reports whether the set has no members.
func (s RoleSet) IsEmpty() bool {
	return s == 0
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(roleBits))
	for _, role := range AllRoles() {
		if s.Contains(role) {
			names = append(names, string(role))
		}
	}
	return strings.Join(names, ",")
}
