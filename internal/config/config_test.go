package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:45")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 9, Minute: 45}, c)
	assert.Equal(t, "09:45", c.String())

	for _, bad := range []string{"9:45:00", "24:00", "09.45", "morning", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestClockOn(t *testing.T) {
	c := Clock{Hour: 18, Minute: 30}
	d := time.Date(2024, time.March, 4, 11, 7, 33, 0, time.UTC)

	got := c.On(d)
	assert.Equal(t, time.Date(2024, time.March, 4, 18, 30, 0, 0, time.UTC), got)
}

func TestDefaultAttendanceConfig(t *testing.T) {
	cfg := DefaultAttendanceConfig()

	assert.Equal(t, Clock{Hour: 9, Minute: 30}, cfg.DefaultShiftStart)
	assert.Equal(t, Clock{Hour: 18, Minute: 30}, cfg.DefaultShiftEnd)
	assert.Equal(t, 15, cfg.DefaultGraceMinutes)
	assert.Equal(t, 100.0, cfg.DefaultGeoRadiusMeters)
	assert.Equal(t, 50.0, cfg.LegacyUserRadiusSentinel)
	assert.Equal(t, 120*time.Minute, cfg.IPDedupWindow)
	assert.Equal(t, 60, cfg.HistoryDays)
	assert.Zero(t, cfg.RetentionDays)
}
