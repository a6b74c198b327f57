package models

import "time"

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"index"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        int       `json:"role" gorm:"default:0"` // 0: khách, 1: chủ nhà
	Status      int       `json:"status" gorm:"default:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
