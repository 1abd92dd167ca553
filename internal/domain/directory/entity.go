package directory

// Profile is the canonical employee profile. The upstream exposes the team
// reference under several legacy field names; the client adapter collapses
// them into TeamID before a Profile reaches this core.
type Profile struct {
	ID       string
	FullName string
	Email    string
	TeamID   string
}

// Team is the canonical team record. ManagerID may be empty when the team
// has no manager in any shape the upstream knows how to express.
type Team struct {
	ID        string
	Name      string
	ManagerID string
}
