package model

import "time"

// UserFollowLojista liga um usuário a um lojista que ele segue.
type UserFollowLojista struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_user_lojista" json:"userId"`
	LojistaID uint      `gorm:"not null;uniqueIndex:idx_follow_user_lojista;index" json:"lojistaId"`
	CreatedAt time.Time `json:"createdAt"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Lojista *Lojista `gorm:"foreignKey:LojistaID;constraint:OnDelete:CASCADE" json:"lojista,omitempty"`
}

func (UserFollowLojista) TableName() string {
	return "user_follow_lojistas"
}
