package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	ActAsAdmin() error
	ActAsKiosk() error
	ActAsEmployee(n int) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers sign-in and response assertion steps shared by
// every feature.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I am signed in as an admin$`, steps.signedInAsAdmin)
	ctx.Step(`^I am signed in as the kiosk$`, steps.signedInAsKiosk)
	ctx.Step(`^I am signed in as employee (\d+)$`, steps.signedInAsEmployee)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be null$`, steps.fieldShouldBeNull)
	ctx.Step(`^the request should be blocked with "([^"]*)"$`, steps.blockedWith)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) signedInAsAdmin(context.Context) error { return s.tc.ActAsAdmin() }

func (s *commonSteps) signedInAsKiosk(context.Context) error { return s.tc.ActAsKiosk() }

func (s *commonSteps) signedInAsEmployee(_ context.Context, n int) error {
	return s.tc.ActAsEmployee(n)
}

func (s *commonSteps) statusShouldBe(_ context.Context, expected int) error {
	if got := s.tc.GetLastResponseStatus(); got != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, got, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(_ context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("field %q: expected %q, got %q", field, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeNull(_ context.Context, field string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if value != nil {
		return fmt.Errorf("field %q: expected null, got %v", field, value)
	}
	return nil
}

func (s *commonSteps) blockedWith(ctx context.Context, code string) error {
	if err := s.statusShouldBe(ctx, 403); err != nil {
		return err
	}
	return s.fieldShouldBe(ctx, "code", code)
}
