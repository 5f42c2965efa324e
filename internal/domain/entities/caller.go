package entities

// Role is the access level attached to a session.

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
)

// Caller identifies who is performing an operation. It is resolved from the
// session token by the HTTP layer and passed explicitly into every usecase,
// so authorization never depends on ambient state.
type Caller struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsStaff reports whether the caller may operate on any order.
func (c Caller) IsStaff() bool {
	return c.Role == RoleAdmin || c.Role == RoleEmployee
}
