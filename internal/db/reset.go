package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"acme-hr-api/internal/models"
)

var (
	seedDepartments = []string{"HR", "Finance", "IT"}

	// Each employee points at seedDepartments by index.
	seedEmployees = []struct {
		Name       string
		Department int
	}{
		{Name: "John Doe", Department: 0},
		{Name: "Jane Smith", Department: 1},
		{Name: "Bob Johnson", Department: 2},
	}
)

// Reset drops both tables, recreates them and inserts the seed rows.
// Everything previously stored is lost.
func Reset(ctx context.Context, database *gorm.DB) error {
	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Migrator().DropTable(&models.Employee{}, &models.Department{}); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}

		if err := tx.Migrator().CreateTable(&models.Department{}, &models.Employee{}); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}

		departments := make([]models.Department, 0, len(seedDepartments))
		for _, name := range seedDepartments {
			departments = append(departments, models.Department{Name: name})
		}
		if err := tx.Create(&departments).Error; err != nil {
			return fmt.Errorf("seed departments: %w", err)
		}

		employees := make([]models.Employee, 0, len(seedEmployees))
		for _, seed := range seedEmployees {
			departmentID := departments[seed.Department].ID
			employees = append(employees, models.Employee{
				Name:         seed.Name,
				DepartmentID: &departmentID,
			})
		}
		if err := tx.Create(&employees).Error; err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}

		return nil
	})
}
