package e2e

import (
	"github.com/cucumber/godog"

	"punchclock/e2e/steps/admin"
	"punchclock/e2e/steps/common"
	"punchclock/e2e/steps/kiosk"
	"punchclock/e2e/steps/timeclock"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	admin.RegisterSteps(ctx, tc)
	kiosk.RegisterSteps(ctx, tc)
	timeclock.RegisterSteps(ctx, tc)
}
