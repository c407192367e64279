package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistanceIdentity(t *testing.T) {
	assert.Zero(t, CalculateHaversineDistance(12.9716, 77.5946, 12.9716, 77.5946))
}

func TestCalculateHaversineDistanceOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is ~111.19 km with a 6371 km mean earth radius.
	got := CalculateHaversineDistance(0, 0, 1, 0)
	assert.InDelta(t, 111195, got, 10)
}

func TestCalculateHaversineDistanceSymmetry(t *testing.T) {
	a := CalculateHaversineDistance(12.9716, 77.5946, 13.0827, 80.2707)
	b := CalculateHaversineDistance(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, a, b, 1e-9)

	// Bengaluru to Chennai is ~290 km.
	assert.InDelta(t, 290_000, a, 5_000)
}
