package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/peakhr/hr-console-go/internal/domain/directory"
	"github.com/peakhr/hr-console-go/internal/pkg/cache"
)

const hopTimeout = 3 * time.Second

// Resolver walks employee -> team -> manager against the upstream directory.
// Every hop carries its own timeout and degrades to absent on any failure:
// the result only selects notification recipients, so a missing manager is
// an acceptable answer and an upstream outage must never become an error.
type Resolver struct {
	client directory.Client
	cache  *cache.Redis
	ttl    time.Duration
}

// NewResolver creates a resolver. The redis cache is optional; pass nil to
// go straight to the upstream on every lookup.
func NewResolver(client directory.Client, redis *cache.Redis, ttl time.Duration) *Resolver {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &Resolver{
		client: client,
		cache:  redis,
		ttl:    ttl,
	}
}

// ResolveManagerID resolves the direct manager of an employee. The second
// return value is false when no manager could be found for any reason.
func (r *Resolver) ResolveManagerID(ctx context.Context, employeeID string) (string, bool) {
	if employeeID == "" {
		return "", false
	}

	profile, err := r.getEmployee(ctx, employeeID)
	if err != nil {
		slog.Debug("manager resolution: employee lookup failed", "employee_id", employeeID, "error", err)
		return "", false
	}

	if profile.TeamID == "" {
		return "", false
	}

	team, err := r.getTeam(ctx, profile.TeamID)
	if err != nil {
		slog.Debug("manager resolution: team lookup failed", "team_id", profile.TeamID, "error", err)
		return "", false
	}

	if team.ManagerID == "" {
		return "", false
	}

	return team.ManagerID, true
}

func (r *Resolver) getEmployee(ctx context.Context, id string) (directory.Profile, error) {
	key := "directory:employee:" + id

	var cached directory.Profile
	if r.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	hopCtx, cancel := context.WithTimeout(ctx, hopTimeout)
	defer cancel()

	profile, err := r.client.GetEmployee(hopCtx, id)
	if err != nil {
		return directory.Profile{}, err
	}

	r.cacheSet(ctx, key, profile)
	return profile, nil
}

func (r *Resolver) getTeam(ctx context.Context, id string) (directory.Team, error) {
	key := "directory:team:" + id

	var cached directory.Team
	if r.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	hopCtx, cancel := context.WithTimeout(ctx, hopTimeout)
	defer cancel()

	team, err := r.client.GetTeam(hopCtx, id)
	if err != nil {
		return directory.Team{}, err
	}

	r.cacheSet(ctx, key, team)
	return team, nil
}

// cacheGet reports whether the key was present and decoded. Cache failures
// count as misses.
func (r *Resolver) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if r.cache == nil {
		return false
	}

	value, err := r.cache.Get(ctx, key)
	if err != nil {
		if !cache.IsMiss(err) {
			slog.Debug("directory cache read failed", "key", key, "error", err)
		}
		return false
	}

	return json.Unmarshal([]byte(value), out) == nil
}

func (r *Resolver) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.cache == nil {
		return
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := r.cache.Set(ctx, key, string(encoded), r.ttl); err != nil {
		slog.Debug("directory cache write failed", "key", key, "error", err)
	}
}
