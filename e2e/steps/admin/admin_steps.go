package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, body any) error
	PATCH(path string, body any) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	Remember(key, value string)
	Recall(key string) string
}

// RegisterSteps registers roster and dashboard steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &adminSteps{tc: tc}

	ctx.Step(`^I add employee "([^"]*)" with email "([^"]*)"$`, steps.addEmployee)
	ctx.Step(`^I deactivate the employee I added$`, steps.deactivateAdded)
	ctx.Step(`^I open the dashboard summary for "([^"]*)"$`, steps.summaryFor)
}

type adminSteps struct {
	tc TestContext
}

func (s *adminSteps) addEmployee(_ context.Context, name, email string) error {
	if err := s.tc.POST("/v1/admin/employees", map[string]string{"fullName": name, "email": email}); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 201 {
		return nil
	}
	employeeID, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	s.tc.Remember("added_employee", fmt.Sprint(employeeID))
	return nil
}

func (s *adminSteps) deactivateAdded(context.Context) error {
	employeeID := s.tc.Recall("added_employee")
	if employeeID == "" {
		return fmt.Errorf("no employee was added in this scenario")
	}
	return s.tc.PATCH("/v1/admin/employees/"+employeeID, map[string]bool{"isActive": false})
}

func (s *adminSteps) summaryFor(_ context.Context, date string) error {
	return s.tc.GET("/v1/admin/dashboard/summary?date=" + url.QueryEscape(date))
}
