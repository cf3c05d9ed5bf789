package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"acme-hr-api/internal/apperror"
	"acme-hr-api/internal/models"
)

// DirectoryService reads and writes departments and employees. Name and
// department checks are left to the schema constraints.
type DirectoryService struct {
	db *gorm.DB
}

var _ Directory = (*DirectoryService)(nil)

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

func (s *DirectoryService) ListDepartments(ctx context.Context) ([]DepartmentDTO, error) {
	var departments []models.Department
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}

	result := make([]DepartmentDTO, 0, len(departments))
	for _, department := range departments {
		result = append(result, departmentToDTO(department))
	}
	return result, nil
}

func (s *DirectoryService) ListEmployees(ctx context.Context) ([]EmployeeDTO, error) {
	var employees []models.Employee
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	result := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		result = append(result, employeeToDTO(employee))
	}
	return result, nil
}

func (s *DirectoryService) CreateEmployee(ctx context.Context, input EmployeeInput) (EmployeeDTO, error) {
	employee := models.Employee{
		Name:         input.Name,
		DepartmentID: input.DepartmentID,
	}

	if err := s.db.WithContext(ctx).Create(&employee).Error; err != nil {
		return EmployeeDTO{}, fmt.Errorf("create employee: %w", mapDatabaseError(err))
	}

	return employeeToDTO(employee), nil
}

// UpdateEmployee overwrites name and department and bumps updated_at. On
// postgres this is a single UPDATE ... RETURNING; other dialects update and
// read back inside one transaction.
func (s *DirectoryService) UpdateEmployee(ctx context.Context, employeeID uint, input EmployeeInput) (EmployeeDTO, error) {
	var (
		employee models.Employee
		err      error
	)
	if supportsUpdateReturning(s.db.Dialector) {
		err = s.updateReturning(ctx, employeeID, input, &employee)
	} else {
		err = s.updateAndReload(ctx, employeeID, input, &employee)
	}
	if err != nil {
		return EmployeeDTO{}, fmt.Errorf("update employee %d: %w", employeeID, err)
	}

	return employeeToDTO(employee), nil
}

func (s *DirectoryService) updateReturning(ctx context.Context, employeeID uint, input EmployeeInput, employee *models.Employee) error {
	result := s.db.WithContext(ctx).
		Model(employee).
		Clauses(clause.Returning{}).
		Where("id = ?", employeeID).
		Updates(employeeUpdates(s.db, input))
	if result.Error != nil {
		return mapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeNotFound, "Employee not found")
	}
	return nil
}

func (s *DirectoryService) updateAndReload(ctx context.Context, employeeID uint, input EmployeeInput, employee *models.Employee) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Employee{}).
			Where("id = ?", employeeID).
			Updates(employeeUpdates(tx, input))
		if result.Error != nil {
			return mapDatabaseError(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.New(apperror.CodeNotFound, "Employee not found")
		}

		if err := tx.First(employee, employeeID).Error; err != nil {
			return fmt.Errorf("reload employee: %w", err)
		}
		return nil
	})
}

func employeeUpdates(db *gorm.DB, input EmployeeInput) map[string]interface{} {
	return map[string]interface{}{
		"name":          input.Name,
		"department_id": input.DepartmentID,
		"updated_at":    db.NowFunc(),
	}
}

// supportsUpdateReturning is true where RETURNING rows scan back with their
// column types intact. SQLite reports no declared types for them, so
// timestamps would come back as text.
func supportsUpdateReturning(dialector gorm.Dialector) bool {
	return dialector.Name() == "postgres"
}

// DeleteEmployee succeeds whether or not the employee exists.
func (s *DirectoryService) DeleteEmployee(ctx context.Context, employeeID uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Employee{}, employeeID).Error; err != nil {
		return fmt.Errorf("delete employee %d: %w", employeeID, mapDatabaseError(err))
	}
	return nil
}

// DeleteDepartment removes the department; its employees go with it through
// the ON DELETE CASCADE foreign key.
func (s *DirectoryService) DeleteDepartment(ctx context.Context, departmentID uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Department{}, departmentID).Error; err != nil {
		return fmt.Errorf("delete department %d: %w", departmentID, mapDatabaseError(err))
	}
	return nil
}

func (s *DirectoryService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func departmentToDTO(department models.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:   department.ID,
		Name: department.Name,
	}
}

func employeeToDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:           employee.ID,
		Name:         employee.Name,
		DepartmentID: employee.DepartmentID,
		CreatedAt:    employee.CreatedAt,
		UpdatedAt:    employee.UpdatedAt,
	}
}

func mapDatabaseError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.Wrap(apperror.CodeConstraint, "invalid department reference", err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return apperror.Wrap(apperror.CodeConstraint, "check constraint violated", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return apperror.Wrap(apperror.CodeConstraint, "invalid department reference", err)
		case "23502", "23514":
			return apperror.Wrap(apperror.CodeConstraint, "required field missing or empty", err)
		}
	}
	return err
}
