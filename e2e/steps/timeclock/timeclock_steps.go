package timeclock

import (
	"context"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	ActAsAdmin() error
	GET(path string) error
	POST(path string, body any) error
	PUT(path string, body any) error
	Recall(key string) string
}

// RegisterSteps registers self-service punch and policy steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &timeclockSteps{tc: tc}

	ctx.Step(`^I punch without location$`, steps.punchWithoutLocation)
	ctx.Step(`^I punch with today's QR code$`, steps.punchWithDailyQR)
	ctx.Step(`^I punch with a forged QR code$`, steps.punchWithForgedQR)
	ctx.Step(`^I punch from (-?\d+\.\d+), (-?\d+\.\d+) with accuracy (\d+)$`, steps.punchFrom)
	ctx.Step(`^I look at today's punches$`, steps.today)
	ctx.Step(`^the geofence is centered at (-?\d+\.\d+), (-?\d+\.\d+) with radius (\d+)$`, steps.configureGeofence)
}

type timeclockSteps struct {
	tc TestContext
}

func (s *timeclockSteps) punchWithoutLocation(context.Context) error {
	return s.tc.POST("/v1/timeclock/punch", map[string]any{})
}

func (s *timeclockSteps) punchWithDailyQR(context.Context) error {
	return s.tc.POST("/v1/timeclock/punch", map[string]any{
		"qr": map[string]string{"token": s.tc.Recall("dailyQR")},
	})
}

func (s *timeclockSteps) punchWithForgedQR(context.Context) error {
	return s.tc.POST("/v1/timeclock/punch", map[string]any{
		"qr": map[string]string{"token": "eyJ2IjoxfQ.forged"},
	})
}

func (s *timeclockSteps) punchFrom(_ context.Context, lat, lng float64, accuracy int) error {
	return s.tc.POST("/v1/timeclock/punch", map[string]any{
		"geo": map[string]any{"lat": lat, "lng": lng, "accuracy": accuracy},
	})
}

func (s *timeclockSteps) today(context.Context) error {
	return s.tc.GET("/v1/timeclock/today")
}

// configureGeofence leaves the caller signed in as admin.
func (s *timeclockSteps) configureGeofence(_ context.Context, lat, lng float64, radius int) error {
	if err := s.tc.ActAsAdmin(); err != nil {
		return err
	}
	return s.tc.PUT("/v1/admin/settings", map[string]any{
		"geofenceEnabled":      true,
		"geofenceLat":          lat,
		"geofenceLng":          lng,
		"geofenceRadiusMeters": radius,
	})
}
