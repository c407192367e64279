package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/domain/branch"
	"github.com/megamart/hr-backend-go/internal/domain/user"
	"github.com/megamart/hr-backend-go/internal/pkg/utils"
)

// geoTarget is the circle a geofenced login must fall inside. It is resolved
// per login and never persisted.
type geoTarget struct {
	Latitude  float64
	Longitude float64
	Radius    float64
}

// checkGeofence enforces location-based login eligibility. Users without
// geofencing always pass; geofenced users must supply coordinates inside the
// resolved perimeter.
func (a *AttendanceServiceImpl) checkGeofence(ctx context.Context, usr *user.User, lat, lng *float64) error {
	if !usr.Geofenced {
		return nil
	}

	if lat == nil || lng == nil {
		return attendance.ErrLocationSignalLost
	}

	target, err := a.resolveGeoTarget(ctx, usr)
	if err != nil {
		return err
	}
	if target == nil {
		// Geofencing is on but neither the user nor the branch carries
		// coordinates; nothing to enforce against.
		slog.Warn("Geofenced user has no resolvable geo target, allowing login", "user_id", usr.ID)
		return nil
	}

	distance := utils.CalculateHaversineDistance(*lat, *lng, target.Latitude, target.Longitude)
	if distance > target.Radius {
		return attendance.ErrOutsideGeoPerimeter
	}
	return nil
}

// resolveGeoTarget picks user-level office coordinates when present, else the
// branch's, and resolves the radius with the user > branch > default
// precedence. Returns nil when no coordinates resolve at all.
func (a *AttendanceServiceImpl) resolveGeoTarget(ctx context.Context, usr *user.User) (*geoTarget, error) {
	var br *branch.Branch
	if usr.BranchID != nil {
		b, err := a.BranchRepository.GetByID(ctx, *usr.BranchID)
		if err != nil {
			if !errors.Is(err, branch.ErrBranchNotFound) {
				return nil, fmt.Errorf("failed to get branch: %w", err)
			}
		} else {
			br = &b
		}
	}

	target := &geoTarget{Radius: a.cfg.DefaultGeoRadiusMeters}
	switch {
	case usr.OfficeLatitude != nil && usr.OfficeLongitude != nil:
		target.Latitude = *usr.OfficeLatitude
		target.Longitude = *usr.OfficeLongitude
	case br != nil && br.Latitude != nil && br.Longitude != nil:
		target.Latitude = *br.Latitude
		target.Longitude = *br.Longitude
	default:
		return nil, nil
	}

	if br != nil && br.GeoRadius != nil {
		target.Radius = *br.GeoRadius
	}
	// Old portal versions wrote 50.0 into the user radius column to mean
	// "unset", so that exact value must not shadow the branch radius.
	if usr.GeoRadius != nil && *usr.GeoRadius != a.cfg.LegacyUserRadiusSentinel {
		target.Radius = *usr.GeoRadius
	}

	return target, nil
}
