package models

import (
	"time"
)

// Hospital is a tenant. Every patient-facing row in the system carries a
// hospital_id and every query is filtered on it; no data crosses tenants.
type Hospital struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Code      string    `gorm:"column:code;size:10;not null;unique;index" json:"code"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	City      string    `gorm:"column:city" json:"city"`
	State     string    `gorm:"column:state" json:"state"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patients  []Patient `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
}

func (Hospital) TableName() string {
	return "hospital"
}
