package domain

// Role is the account's single authorization role.
type Role string

const (
	// RoleCustomer is the default role for self-registered accounts.
	RoleCustomer Role = "customer"

	// RoleEmployee may administer other accounts (freeze, create, remove).
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleEmployee
}

func (r Role) String() string { return string(r) }
