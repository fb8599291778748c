package model

import "time"

type ProdutoFavorito struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorito_user_produto" json:"userId"`
	ProdutoID uint      `gorm:"not null;uniqueIndex:idx_favorito_user_produto" json:"produtoId"`
	CreatedAt time.Time `json:"createdAt"`

	Produto *Produto `gorm:"foreignKey:ProdutoID;constraint:OnDelete:CASCADE" json:"produto,omitempty"`
}

func (ProdutoFavorito) TableName() string {
	return "produto_favoritos"
}
