package kiosk

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	ActAsAdmin() error
	ActAsKiosk() error
	EmployeeID(n int) (string, error)
	GET(path string) error
	POST(path string, body any) error
	PUT(path string, body any) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	Remember(key, value string)
}

// RegisterSteps registers kiosk identification, punch and lockout steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &kioskSteps{tc: tc}

	ctx.Step(`^employee (\d+) has PIN "([^"]*)"$`, steps.employeeHasPIN)
	ctx.Step(`^the kiosk on device "([^"]*)" enters PIN "([^"]*)"$`, steps.enterPIN)
	ctx.Step(`^the kiosk on device "([^"]*)" enters PIN "([^"]*)" (\d+) times$`, steps.enterPINTimes)
	ctx.Step(`^the kiosk punches for employee (\d+) by "([^"]*)"$`, steps.punchFor)
	ctx.Step(`^the kiosk punches for employee (\d+) by "([^"]*)" (\d+) times$`, steps.punchForTimes)
	ctx.Step(`^the kiosk shows today's QR code$`, steps.showDailyQR)
}

type kioskSteps struct {
	tc TestContext
}

func (s *kioskSteps) employeeHasPIN(_ context.Context, n int, pin string) error {
	employeeID, err := s.tc.EmployeeID(n)
	if err != nil {
		return err
	}
	if err := s.tc.ActAsAdmin(); err != nil {
		return err
	}
	if err := s.tc.PUT("/v1/admin/employees/"+employeeID+"/pin", map[string]string{"pin": pin}); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 204 {
		return fmt.Errorf("setting PIN returned %d", status)
	}
	return s.tc.ActAsKiosk()
}

func (s *kioskSteps) enterPIN(_ context.Context, device, pin string) error {
	return s.tc.POST("/v1/kiosk/auth/pin", map[string]string{"pin": pin, "deviceLabel": device})
}

func (s *kioskSteps) enterPINTimes(ctx context.Context, device, pin string, times int) error {
	for range times {
		if err := s.enterPIN(ctx, device, pin); err != nil {
			return err
		}
	}
	return nil
}

func (s *kioskSteps) punchFor(_ context.Context, n int, method string) error {
	employeeID, err := s.tc.EmployeeID(n)
	if err != nil {
		return err
	}
	return s.tc.POST("/v1/kiosk/punch", map[string]string{
		"employeeId":  employeeID,
		"method":      method,
		"deviceLabel": "front-desk",
	})
}

// punchForTimes stops at the first rejected punch.
func (s *kioskSteps) punchForTimes(ctx context.Context, n int, method string, times int) error {
	for i := range times {
		if err := s.punchFor(ctx, n, method); err != nil {
			return err
		}
		if status := s.tc.GetLastResponseStatus(); status != 201 {
			return fmt.Errorf("punch %d returned %d", i+1, status)
		}
	}
	return nil
}

func (s *kioskSteps) showDailyQR(context.Context) error {
	if err := s.tc.ActAsKiosk(); err != nil {
		return err
	}
	if err := s.tc.GET("/v1/kiosk/qr"); err != nil {
		return err
	}
	token, err := s.tc.GetResponseField("qrToken")
	if err != nil {
		return err
	}
	s.tc.Remember("dailyQR", fmt.Sprint(token))
	return nil
}
