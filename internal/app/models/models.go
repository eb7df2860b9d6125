package models

import "fmt"

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent        RoleType = "student"
	RoleRepresentative RoleType = "representative" // student with elevated visibility over a mess
	RoleSupervisor     RoleType = "supervisor"
	RoleCoordinator    RoleType = "coordinator"
	RoleDirector       RoleType = "director"
	RoleAuthority      RoleType = "authority"
	RoleAdmin          RoleType = "admin"
)

// AllRoles lists every role in escalation order.
func AllRoles() []RoleType {
	return []RoleType{
		RoleStudent,
		RoleRepresentative,
		RoleSupervisor,
		RoleCoordinator,
		RoleDirector,
		RoleAuthority,
		RoleAdmin,
	}
}

// Valid reports whether r is one of the known roles
func (r RoleType) Valid() bool {
	for _, known := range AllRoles() {
		if r == known {
			return true
		}
	}
	return false
}

// HasStudentProfile reports whether users of this role carry a Student record
func (r RoleType) HasStudentProfile() bool {
	return r == RoleStudent || r == RoleRepresentative
}

// ParseRoleType converts a raw string into a RoleType
func ParseRoleType(s string) (RoleType, error) {
	r := RoleType(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Session is the caller identity passed explicitly into core operations.
type Session struct {
	UserID int64
	Email  string
	Role   RoleType
}
