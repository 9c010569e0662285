package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleHotel    Role = "hotel"
	RoleAdmin    Role = "admin"
)

var Roles = []Role{RoleCustomer, RoleDriver, RoleHotel, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleHotel, RoleAdmin:
		return true
	}
	return false
}

// Partner reports whether the role is a driver or hotel-owner account.
func (r Role) Partner() bool {
	return r == RoleDriver || r == RoleHotel
}

// Label is the display name; a missing or unknown role renders as "Unknown".
func (r Role) Label() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleDriver:
		return "Driver"
	case RoleHotel:
		return "Hotel Owner"
	case RoleAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential is the login record kept next to a user profile.
type Credential struct {
	UserID       string
	Email        string
	Phone        string
	PasswordHash string
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor may change a record owned by ownerID.
func (a Actor) CanManage(ownerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == ownerID)
}
