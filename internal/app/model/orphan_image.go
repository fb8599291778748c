package model

import "time"

// OrphanImage records a stored image whose deletion failed so the sweeper
// can retry it later.
type OrphanImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	LastError string    `gorm:"type:text" json:"lastError"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (OrphanImage) TableName() string {
	return "orphan_images"
}
