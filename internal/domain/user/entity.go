package user

import "time"

type Role string

// IsHR reports whether the role may correct attendance records.
func (r Role) IsHR() bool {
	return r == RoleHR || r == RoleAdmin
}

const (
	RoleAdmin              Role = "ADMIN"               // Full access
	RoleHR                 Role = "HR"                  // Can correct attendance records
	RoleEmployee           Role = "EMPLOYEE"            // Regular employee
	RoleMarketingExecutive Role = "MARKETING_EXECUTIVE" // Field role, IP-tracked
)

type User struct {
	ID              string
	FullName        string
	Username        string
	Email           string
	Role            Role
	ShiftID         *string
	BranchID        *string
	Geofenced       bool
	OfficeLatitude  *float64
	OfficeLongitude *float64
	GeoRadius       *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName prefers the full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
