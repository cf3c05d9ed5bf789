package models

import "time"

type Employee struct {
	ID           uint        `gorm:"primaryKey"`
	Name         string      `gorm:"type:varchar(255);not null;check:chk_employees_name,name <> ''"`
	DepartmentID *uint       `gorm:"index"`
	Department   *Department `gorm:"foreignKey:DepartmentID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time   `gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"not null;autoUpdateTime"`
}
