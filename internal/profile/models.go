package profile

import "time"

const (
	RoleStudent = "student"
	RoleDriver  = "driver"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the application roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

type Profile struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Roll      string    `json:"roll"`
	Email     string    `json:"email"`
	Hostel    string    `json:"hostel"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
