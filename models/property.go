package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Property struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	HostID           uint            `json:"hostId" gorm:"index"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Province         string          `json:"province"`
	District         string          `json:"district"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img" gorm:"type:json"`
	// PricePerNight chỉ dùng khi property không có phòng (đặt nguyên căn giá đơn)
	PricePerNight  int             `json:"pricePerNight"`
	IsActive       bool            `json:"isActive" gorm:"default:false"`
	Host           User            `json:"host" gorm:"foreignKey:HostID"`
	Rooms          []Room          `json:"rooms" gorm:"foreignKey:PropertyID"`
	BlockedPeriods []BlockedPeriod `json:"blockedPeriods" gorm:"foreignKey:PropertyID"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TotalBeds đếm tổng số giường của property
func (p *Property) TotalBeds() int {
	total := 0
	for _, room := range p.Rooms {
		total += len(room.Beds)
	}
	return total
}

// FindBed tìm giường theo BedID trong topology hiện tại
func (p *Property) FindBed(bedID uint) (*Room, *Bed, error) {
	for i := range p.Rooms {
		for j := range p.Rooms[i].Beds {
			if p.Rooms[i].Beds[j].BedID == bedID {
				return &p.Rooms[i], &p.Rooms[i].Beds[j], nil
			}
		}
	}
	return nil, nil, fmt.Errorf("bed %d not found in property %d", bedID, p.ID)
}
