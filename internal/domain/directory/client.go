package directory

import "context"

// Client is the contract of the upstream employee/team directory and its
// admin search endpoint.
type Client interface {
	GetEmployee(ctx context.Context, id string) (Profile, error)
	GetTeam(ctx context.Context, id string) (Team, error)

	// SearchAdmins returns up to limit users holding administrative
	// capability, used as a notification fallback audience.
	SearchAdmins(ctx context.Context, limit int) ([]Profile, error)
	// ListManagers returns up to limit users holding manager capability.
	ListManagers(ctx context.Context, limit int) ([]Profile, error)
}

// Resolver walks employee -> team -> manager. It never fails: any missing
// hop, unknown field shape, or upstream error resolves to absent. The result
// is only ever used to pick notification recipients, never to gate a
// lifecycle transition.
type Resolver interface {
	ResolveManagerID(ctx context.Context, employeeID string) (managerID string, ok bool)
}
