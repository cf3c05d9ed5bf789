package service

import (
	"context"
	"time"
)

type EmployeeInput struct {
	Name         string
	DepartmentID *uint
}

type DepartmentDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type EmployeeDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	DepartmentID *uint     `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Directory interface {
	ListDepartments(ctx context.Context) ([]DepartmentDTO, error)
	ListEmployees(ctx context.Context) ([]EmployeeDTO, error)
	CreateEmployee(ctx context.Context, input EmployeeInput) (EmployeeDTO, error)
	UpdateEmployee(ctx context.Context, employeeID uint, input EmployeeInput) (EmployeeDTO, error)
	DeleteEmployee(ctx context.Context, employeeID uint) error
	DeleteDepartment(ctx context.Context, departmentID uint) error
	Ping(ctx context.Context) error
}
