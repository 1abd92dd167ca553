package hrcore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/peakhr/hr-console-go/internal/domain/directory"
	"github.com/peakhr/hr-console-go/internal/pkg/page"
)

// employeePayload carries every field name the directory has ever used for
// the team reference. The "try these names in order" logic lives here and
// nowhere else.
type employeePayload struct {
	ID        string          `json:"id"`
	FullName  string          `json:"full_name"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	TeamID    string          `json:"team_id"`
	TeamIDAlt string          `json:"teamId"`
	Team      json.RawMessage `json:"team"`
}

func (p employeePayload) toProfile() directory.Profile {
	profile := directory.Profile{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
	}
	if profile.FullName == "" {
		profile.FullName = p.Name
	}

	switch {
	case p.TeamID != "":
		profile.TeamID = p.TeamID
	case p.TeamIDAlt != "":
		profile.TeamID = p.TeamIDAlt
	default:
		profile.TeamID = looseID(p.Team)
	}

	return profile
}

// teamPayload covers the two shapes a team's manager arrives in: a direct
// id field or a nested manager object.
type teamPayload struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ManagerID    string          `json:"manager_id"`
	ManagerIDAlt string          `json:"managerId"`
	Manager      json.RawMessage `json:"manager"`
}

func (p teamPayload) toTeam() directory.Team {
	team := directory.Team{
		ID:   p.ID,
		Name: p.Name,
	}

	switch {
	case p.ManagerID != "":
		team.ManagerID = p.ManagerID
	case p.ManagerIDAlt != "":
		team.ManagerID = p.ManagerIDAlt
	default:
		team.ManagerID = looseID(p.Manager)
	}

	return team
}

// looseID extracts an identifier from a value that may be a plain string or
// an object keyed by "id" or "_id". Anything else yields empty.
func looseID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		ID    string `json:"id"`
		AltID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.ID != "" {
			return obj.ID
		}
		return obj.AltID
	}

	return ""
}

func (c *Client) GetEmployee(ctx context.Context, id string) (directory.Profile, error) {
	var payload employeePayload
	if err := c.do(ctx, http.MethodGet, "/employees/"+id, nil, nil, &payload); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return directory.Profile{}, directory.ErrEmployeeNotFound
		}
		return directory.Profile{}, err
	}
	return payload.toProfile(), nil
}

func (c *Client) GetTeam(ctx context.Context, id string) (directory.Team, error) {
	var payload teamPayload
	if err := c.do(ctx, http.MethodGet, "/teams/"+id, nil, nil, &payload); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return directory.Team{}, directory.ErrTeamNotFound
		}
		return directory.Team{}, err
	}
	return payload.toTeam(), nil
}

func (c *Client) SearchAdmins(ctx context.Context, limit int) ([]directory.Profile, error) {
	return c.searchUsers(ctx, "admin", limit)
}

func (c *Client) ListManagers(ctx context.Context, limit int) ([]directory.Profile, error) {
	return c.searchUsers(ctx, "manager", limit)
}

func (c *Client) searchUsers(ctx context.Context, capability string, limit int) ([]directory.Profile, error) {
	if limit < 1 {
		limit = 5
	}

	query := url.Values{}
	query.Set("capability", capability)
	query.Set("limit", strconv.Itoa(limit))

	raw, err := c.doRaw(ctx, http.MethodGet, "/users/search", query, nil)
	if err != nil {
		return nil, err
	}

	normalized, err := page.Normalize[employeePayload](raw, 1, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize user search result: %w", err)
	}

	profiles := make([]directory.Profile, 0, len(normalized.Items))
	for _, p := range normalized.Items {
		profiles = append(profiles, p.toProfile())
		if len(profiles) == limit {
			break
		}
	}

	return profiles, nil
}
