package constants

// Access control roles
const (
	RoleAdmin     = "ADMIN"
	RoleOperator  = "OPERATOR"
	RoleCanceller = "CANCELLER"
)

// AllRoles lists every role known to the access control table
var AllRoles = []string{RoleAdmin, RoleOperator, RoleCanceller}

// Auth types
const (
	AuthTypeJWT = "jwt"
)
