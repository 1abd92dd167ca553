package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/peakhr/hr-console-go/internal/domain/directory"
	"github.com/peakhr/hr-console-go/internal/pkg/cache"
)

type fakeDirectoryClient struct {
	getEmployeeFn  func(ctx context.Context, id string) (domain.Profile, error)
	getTeamFn      func(ctx context.Context, id string) (domain.Team, error)
	employeeCalls  int
	teamCalls      int
	searchAdminsFn func(ctx context.Context, limit int) ([]domain.Profile, error)
	listManagersFn func(ctx context.Context, limit int) ([]domain.Profile, error)
}

func (f *fakeDirectoryClient) GetEmployee(ctx context.Context, id string) (domain.Profile, error) {
	f.employeeCalls++
	if f.getEmployeeFn != nil {
		return f.getEmployeeFn(ctx, id)
	}
	return domain.Profile{}, domain.ErrEmployeeNotFound
}

func (f *fakeDirectoryClient) GetTeam(ctx context.Context, id string) (domain.Team, error) {
	f.teamCalls++
	if f.getTeamFn != nil {
		return f.getTeamFn(ctx, id)
	}
	return domain.Team{}, domain.ErrTeamNotFound
}

func (f *fakeDirectoryClient) SearchAdmins(ctx context.Context, limit int) ([]domain.Profile, error) {
	if f.searchAdminsFn != nil {
		return f.searchAdminsFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeDirectoryClient) ListManagers(ctx context.Context, limit int) ([]domain.Profile, error) {
	if f.listManagersFn != nil {
		return f.listManagersFn(ctx, limit)
	}
	return nil, nil
}

func TestResolveManagerID_Found(t *testing.T) {
	client := &fakeDirectoryClient{
		getEmployeeFn: func(ctx context.Context, id string) (domain.Profile, error) {
			return domain.Profile{ID: id, TeamID: "team-1"}, nil
		},
		getTeamFn: func(ctx context.Context, id string) (domain.Team, error) {
			return domain.Team{ID: id, ManagerID: "mgr-7"}, nil
		},
	}
	resolver := NewResolver(client, nil, 0)

	managerID, ok := resolver.ResolveManagerID(context.Background(), "emp-1")

	assert.True(t, ok)
	assert.Equal(t, "mgr-7", managerID)
}

func TestResolveManagerID_NoTeamReference(t *testing.T) {
	client := &fakeDirectoryClient{
		getEmployeeFn: func(ctx context.Context, id string) (domain.Profile, error) {
			return domain.Profile{ID: id}, nil
		},
	}
	resolver := NewResolver(client, nil, 0)

	_, ok := resolver.ResolveManagerID(context.Background(), "emp-1")

	assert.False(t, ok)
	assert.Zero(t, client.teamCalls, "no team lookup without a team reference")
}

func TestResolveManagerID_TeamWithoutManager(t *testing.T) {
	client := &fakeDirectoryClient{
		getEmployeeFn: func(ctx context.Context, id string) (domain.Profile, error) {
			return domain.Profile{ID: id, TeamID: "team-1"}, nil
		},
		getTeamFn: func(ctx context.Context, id string) (domain.Team, error) {
			return domain.Team{ID: id}, nil
		},
	}
	resolver := NewResolver(client, nil, 0)

	_, ok := resolver.ResolveManagerID(context.Background(), "emp-1")
	assert.False(t, ok)
}

func TestResolveManagerID_EmployeeLookupFails(t *testing.T) {
	client := &fakeDirectoryClient{
		getEmployeeFn: func(ctx context.Context, id string) (domain.Profile, error) {
			return domain.Profile{}, errors.New("directory unavailable")
		},
	}
	resolver := NewResolver(client, nil, 0)

	_, ok := resolver.ResolveManagerID(context.Background(), "emp-1")
	assert.False(t, ok)
}

func TestResolveManagerID_TeamLookupFails(t *testing.T) {
	client := &fakeDirectoryClient{
		getEmployeeFn: func(ctx context.Context, id string) (domain.Profile, error) {
			return domain.Profile{ID: id, TeamID: "team-1"}, nil
		},
		getTeamFn: func(ctx context.Context, id string) (domain.Team, error) {
			return domain.Team{}, errors.New("timeout")
		},
	}
	resolver := NewResolver(client, nil, 0)

	_, ok := resolver.ResolveManagerID(context.Background(), "emp-1")
	assert.False(t, ok)
}

func TestResolveManagerID_EmptyEmployeeID(t *testing.T) {
	client := &fakeDirectoryClient{}
	resolver := NewResolver(client, nil, 0)

	_, ok := resolver.ResolveManagerID(context.Background(), "")

	assert.False(t, ok)
	assert.Zero(t, client.employeeCalls)
}

func TestResolveManagerID_CachesLookups(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCache := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	client := &fakeDirectoryClient{
		getEmployeeFn: func(ctx context.Context, id string) (domain.Profile, error) {
			return domain.Profile{ID: id, TeamID: "team-1"}, nil
		},
		getTeamFn: func(ctx context.Context, id string) (domain.Team, error) {
			return domain.Team{ID: id, ManagerID: "mgr-7"}, nil
		},
	}
	resolver := NewResolver(client, redisCache, time.Minute)

	for i := 0; i < 3; i++ {
		managerID, ok := resolver.ResolveManagerID(context.Background(), "emp-1")
		require.True(t, ok)
		require.Equal(t, "mgr-7", managerID)
	}

	assert.Equal(t, 1, client.employeeCalls)
	assert.Equal(t, 1, client.teamCalls)
}

func TestResolveManagerID_CacheDownDegradesToUpstream(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCache := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mr.Close()

	client := &fakeDirectoryClient{
		getEmployeeFn: func(ctx context.Context, id string) (domain.Profile, error) {
			return domain.Profile{ID: id, TeamID: "team-1"}, nil
		},
		getTeamFn: func(ctx context.Context, id string) (domain.Team, error) {
			return domain.Team{ID: id, ManagerID: "mgr-7"}, nil
		},
	}
	resolver := NewResolver(client, redisCache, time.Minute)

	managerID, ok := resolver.ResolveManagerID(context.Background(), "emp-1")

	assert.True(t, ok)
	assert.Equal(t, "mgr-7", managerID)
}
