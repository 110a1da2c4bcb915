// AngelaMos | 2026
// actor.go

package core

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Actor is the identity resolved by the authorization gate from the live
// user row. Fields reflect the database, not the session token.
type Actor struct {
	ID      int64
	Email   string
	Name    string
	Role    string
	Avatar  string
	Address string
	Phone   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
