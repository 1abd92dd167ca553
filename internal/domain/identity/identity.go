package identity

import "errors"

// Role mirrors the role claim minted by the HR core identity provider.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

var (
	ErrInvalidToken           = errors.New("Invalid or expired token")
	ErrAdminPrivilegeRequired = errors.New("Admin privilege required")
	ErrManagerAccessRequired  = errors.New("Manager access required")
	ErrProxyAccessRequired    = errors.New("Proxy submission capability required")
)

// Actor is the authenticated caller as carried in the token claims.
type Actor struct {
	UserID         string
	Role           Role
	IsAdmin        bool
	CanSubmitProxy bool
}

// FromClaims rebuilds the actor from decoded JWT claims. The subject claim
// is required; everything else defaults to the least privileged value.
func FromClaims(claims map[string]interface{}) (Actor, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Actor{}, ErrInvalidToken
	}

	actor := Actor{UserID: sub, Role: RoleEmployee}
	if role, ok := claims["role"].(string); ok {
		actor.Role = Role(role)
	}
	if admin, ok := claims["is_admin"].(bool); ok {
		actor.IsAdmin = admin
	}
	if proxy, ok := claims["can_submit_proxy"].(bool); ok {
		actor.CanSubmitProxy = proxy
	}
	return actor, nil
}
