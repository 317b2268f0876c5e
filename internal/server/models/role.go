package models

// Role grants a named role to an account. Role names end up as access token claims.
type Role struct {
	ID        int64
	AccountID string
	Name      string
}

// RoleNames flattens roles to their names, preserving order.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}
