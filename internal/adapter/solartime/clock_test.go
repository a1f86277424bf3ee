package solartime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.ngs.io/sun-angles/internal/domain"
)

func TestClockByName(t *testing.T) {
	c, err := ClockByName("")
	require.NoError(t, err)
	assert.IsType(t, domain.MeanSolarClock{}, c)

	c, err = ClockByName(" Apparent ")
	require.NoError(t, err)
	assert.IsType(t, ApparentClock{}, c)

	_, err = ClockByName("sidereal")
	assert.ErrorContains(t, err, "unknown solar clock")
}
