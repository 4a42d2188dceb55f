package enum

// Role represents a staff role. Authorization is edge plumbing; the ledger
// core never inspects roles.
type Role string

const (
	RoleOwner     Role = "Owner"
	RoleManager   Role = "Manager"
	RoleCashier   Role = "Cashier"
	RoleDataEntry Role = "DataEntry"
)

// IsValid reports whether the role is a known staff role
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleCashier, RoleDataEntry:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
