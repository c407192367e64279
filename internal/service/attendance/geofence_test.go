package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/domain/branch"
	"github.com/megamart/hr-backend-go/internal/domain/user"
)

func ptr[T any](v T) *T { return &v }

// Office reference point and a second point roughly 160 m away.
var (
	officeLat = 12.9716
	officeLng = 77.5946
	nearbyLat = 12.9716
	nearbyLng = 77.5961
)

func TestLoginSkipsGeofenceForUnrestrictedUser(t *testing.T) {
	env := newTestEnv(monday.Add(9 * time.Hour))
	env.users.users["u1"] = user.User{ID: "u1", Geofenced: false}

	_, err := env.svc.Login(context.Background(), attendance.LoginRequest{UserID: "u1", IPAddress: "10.0.0.1"})
	assert.NoError(t, err)
}

func TestLoginRequiresCoordinatesWhenGeofenced(t *testing.T) {
	env := newTestEnv(monday.Add(9 * time.Hour))
	env.users.users["u1"] = user.User{
		ID:              "u1",
		Geofenced:       true,
		OfficeLatitude:  &officeLat,
		OfficeLongitude: &officeLng,
	}

	_, err := env.svc.Login(context.Background(), attendance.LoginRequest{UserID: "u1", IPAddress: "10.0.0.1"})
	assert.ErrorIs(t, err, attendance.ErrLocationSignalLost)
}

func TestLoginInsidePerimeter(t *testing.T) {
	env := newTestEnv(monday.Add(9 * time.Hour))
	env.users.users["u1"] = user.User{
		ID:              "u1",
		Geofenced:       true,
		OfficeLatitude:  &officeLat,
		OfficeLongitude: &officeLng,
	}

	// Distance zero is always inside.
	resp, err := env.svc.Login(context.Background(), attendance.LoginRequest{
		UserID:    "u1",
		IPAddress: "10.0.0.1",
		Latitude:  &officeLat,
		Longitude: &officeLng,
	})
	require.NoError(t, err)
	assert.Equal(t, &officeLat, resp.Latitude)
}

func TestLoginOutsidePerimeter(t *testing.T) {
	env := newTestEnv(monday.Add(9 * time.Hour))
	env.users.users["u1"] = user.User{
		ID:              "u1",
		Geofenced:       true,
		OfficeLatitude:  &officeLat,
		OfficeLongitude: &officeLng,
	}

	// ~160 m away against the default 100 m radius.
	_, err := env.svc.Login(context.Background(), attendance.LoginRequest{
		UserID:    "u1",
		IPAddress: "10.0.0.1",
		Latitude:  &nearbyLat,
		Longitude: &nearbyLng,
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideGeoPerimeter)
}

func TestLoginFallsBackToBranchTarget(t *testing.T) {
	env := newTestEnv(monday.Add(9 * time.Hour))
	env.users.users["u1"] = user.User{ID: "u1", Geofenced: true, BranchID: ptr("b1")}
	env.branches.branches["b1"] = branch.Branch{
		ID:        "b1",
		Latitude:  &officeLat,
		Longitude: &officeLng,
		GeoRadius: ptr(200.0),
	}

	// Inside the branch's widened radius even though the point is ~160 m out.
	_, err := env.svc.Login(context.Background(), attendance.LoginRequest{
		UserID:    "u1",
		IPAddress: "10.0.0.1",
		Latitude:  &nearbyLat,
		Longitude: &nearbyLng,
	})
	assert.NoError(t, err)
}

func TestLegacyUserRadiusSentinelDoesNotShadowBranch(t *testing.T) {
	env := newTestEnv(monday.Add(9 * time.Hour))
	env.users.users["u1"] = user.User{
		ID:        "u1",
		Geofenced: true,
		BranchID:  ptr("b1"),
		GeoRadius: ptr(50.0), // legacy "unset" marker
	}
	env.branches.branches["b1"] = branch.Branch{
		ID:        "b1",
		Latitude:  &officeLat,
		Longitude: &officeLng,
		GeoRadius: ptr(200.0),
	}

	target, err := env.svc.resolveGeoTarget(context.Background(), ptr(env.users.users["u1"]))
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, 200.0, target.Radius)

	// A genuine user radius does win.
	usr := env.users.users["u1"]
	usr.GeoRadius = ptr(75.0)
	target, err = env.svc.resolveGeoTarget(context.Background(), &usr)
	require.NoError(t, err)
	assert.Equal(t, 75.0, target.Radius)
}

func TestGeofencedUserWithoutTargetIsAllowed(t *testing.T) {
	env := newTestEnv(monday.Add(9 * time.Hour))
	env.users.users["u1"] = user.User{ID: "u1", Geofenced: true}

	_, err := env.svc.Login(context.Background(), attendance.LoginRequest{
		UserID:    "u1",
		IPAddress: "10.0.0.1",
		Latitude:  &officeLat,
		Longitude: &officeLng,
	})
	assert.NoError(t, err)
}
