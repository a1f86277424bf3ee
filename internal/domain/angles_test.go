package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDeg2Rad tests degree to radian conversion.
func TestDeg2Rad(t *testing.T) {
	tests := []struct {
		deg      float64
		expected float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{360, 2 * math.Pi},
		{-90, -math.Pi / 2},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Deg2Rad(tt.deg), 1e-12, "Deg2Rad(%.1f)", tt.deg)
		assert.InDelta(t, tt.deg, Rad2Deg(Deg2Rad(tt.deg)), 1e-12)
	}
}

func TestHourAngle(t *testing.T) {
	assert.Equal(t, 0.0, HourAngle(12))
	assert.Equal(t, -90.0, HourAngle(6))
	assert.Equal(t, 90.0, HourAngle(18))
	assert.Equal(t, -180.0, HourAngle(0))
}
