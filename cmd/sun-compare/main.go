// Command sun-compare compares the solar zenith angle from the local formulas
// with suncalc over a time window and reports bias, spread and RMSE. With
// -api_url it asks a running server for the same comparison instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.ngs.io/sun-angles/internal/adapter/reference"
	"go.ngs.io/sun-angles/internal/adapter/solartime"
	"go.ngs.io/sun-angles/internal/domain"
	"go.ngs.io/sun-angles/internal/usecase"
)

func fetch(rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("HTTP %d (failed to read body: %v)", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

// fetchComparison calls /v1/sun/compare on a running server.
func fetchComparison(apiURL string, req usecase.CompareRequest) (*usecase.CompareResponse, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprint(req.Lat))
	q.Set("lon", fmt.Sprint(req.Lon))
	q.Set("start", req.Start.Format(time.RFC3339))
	q.Set("end", req.End.Format(time.RFC3339))
	q.Set("interval", req.Interval.String())

	body, err := fetch(apiURL + "/v1/sun/compare?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch API: %w", err)
	}
	var resp usecase.CompareResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}
	return &resp, nil
}

// sunriseOffset returns formula sunrise minus suncalc sunrise for the local
// solar day of date, read on clock. ok is false on polar days and nights.
func sunriseOffset(date time.Time, lat, lon float64, clock domain.SolarClock) (time.Duration, bool) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	// Local mean noon of date, in UTC.
	noon := midnight.Add(time.Duration((12 - lon/15.0) * float64(time.Hour)))

	doy := clock.DayOfYear(noon, lon)
	if domain.ClassifyPolar(doy, lat) != domain.PolarNone {
		return 0, false
	}
	refSunrise, _ := reference.SunTimes(noon, lat, lon)
	if refSunrise.IsZero() {
		return 0, false
	}

	hours := domain.SunriseHour(domain.SunriseHourAngle(doy, lat)) - clock.HourOfDay(noon, lon)
	sunrise := noon.Add(time.Duration(hours * float64(time.Hour)))
	return sunrise.Sub(refSunrise), true
}

func main() {
	var (
		lat      float64
		lon      float64
		dateStr  string
		days     int
		interval time.Duration
		clock    string
		apiURL   string
	)
	flag.Float64Var(&lat, "lat", 35.6762, "Latitude in degrees")
	flag.Float64Var(&lon, "lon", 139.6503, "Longitude in degrees")
	flag.StringVar(&dateStr, "date", time.Now().UTC().Format("2006-01-02"), "First UTC day (YYYY-MM-DD)")
	flag.IntVar(&days, "days", 1, "Number of days to compare")
	flag.DurationVar(&interval, "interval", 10*time.Minute, "Sampling interval")
	flag.StringVar(&clock, "clock", "mean", "Solar clock: mean or apparent (the server's clock with -api_url)")
	flag.StringVar(&apiURL, "api_url", "", "Base URL of a running server (e.g. http://localhost:8080)")
	flag.Parse()

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -date: %v\n", err)
		os.Exit(2)
	}
	if days < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sun-compare -lat 35.68 -lon 139.77 -date 2025-06-21 [-days N] [-interval 10m] [-clock mean|apparent] [-api_url URL]")
		os.Exit(2)
	}

	req := usecase.CompareRequest{
		Lat: lat,
		Lon: lon,
		TimeWindow: usecase.TimeWindow{
			Start:    date,
			End:      date.Add(time.Duration(days) * 24 * time.Hour),
			Interval: interval,
		},
	}

	var resp *usecase.CompareResponse
	if apiURL != "" {
		resp, err = fetchComparison(apiURL, req)
	} else {
		var uc *usecase.SunUseCase
		uc, err = usecase.NewSunUseCase(clock, nil)
		if err == nil {
			resp, err = uc.Compare(req, false)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	sunClock, err := solartime.ClockByName(resp.Clock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clock: %s, reference: %s\n", resp.Clock, resp.Reference)
	fmt.Printf("Paired samples: %d\n", resp.Samples)
	fmt.Printf("Mean(formula-ref) [deg]: %s\n", format(resp.BiasDeg))
	fmt.Printf("StdDev [deg]: %s\n", format(resp.StdDevDeg))
	fmt.Printf("RMSE [deg]: %s\n", format(resp.RMSEDeg))
	fmt.Printf("Max |diff| [deg]: %s at %s\n", format(resp.MaxAbsDeg), resp.MaxAbsAt)

	for d := 0; d < days; d++ {
		day := date.AddDate(0, 0, d)
		if off, ok := sunriseOffset(day, lat, lon, sunClock); ok {
			fmt.Printf("%s sunrise offset (formula-suncalc): %.1f min\n", day.Format("2006-01-02"), off.Minutes())
		} else {
			fmt.Printf("%s sunrise offset: n/a (polar day or night)\n", day.Format("2006-01-02"))
		}
	}
}

func format(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}
