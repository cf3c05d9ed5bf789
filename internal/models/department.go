package models

type Department struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(255);not null;check:chk_departments_name,name <> ''"`
}
