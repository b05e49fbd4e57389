package store

import (
	"context"

	"github.com/google/uuid"

	"punchclock/internal/employee/models"
	id "punchclock/pkg/domain"
)

// SeedDemoCompany creates one company with two active employees for local
// runs without Postgres. Credentials are set through the admin routes.
func SeedDemoCompany(s *InMemory) (id.CompanyID, []models.Profile) {
	companyID := id.CompanyID(uuid.New())
	profiles := []models.Profile{
		{FullName: "Demo Employee One", Email: "one@demo.local"},
		{FullName: "Demo Employee Two", Email: "two@demo.local"},
	}
	for i := range profiles {
		profiles[i].ID = id.EmployeeID(uuid.New())
		profiles[i].CompanyID = companyID
		profiles[i].UserID = id.UserID(uuid.New())
		profiles[i].IsActive = true
		profiles[i].UserActive = true
		_ = s.Create(context.Background(), &profiles[i])
	}
	return companyID, profiles
}
