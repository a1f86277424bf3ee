package solartime

import (
	"fmt"
	"strings"

	"go.ngs.io/sun-angles/internal/domain"
)

// Clock names accepted by ClockByName.
const (
	ClockMean     = "mean"
	ClockApparent = "apparent"
)

// ClockByName returns the solar clock registered under name. An empty name
// selects the mean clock.
func ClockByName(name string) (domain.SolarClock, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ClockMean:
		return domain.MeanSolarClock{}, nil
	case ClockApparent:
		return ApparentClock{}, nil
	default:
		return nil, fmt.Errorf("unknown solar clock %q (expected %s or %s)", name, ClockMean, ClockApparent)
	}
}
