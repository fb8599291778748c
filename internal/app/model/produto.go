package model

import "time"

type Produto struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Nome          string    `gorm:"not null;index" json:"nome"`
	Descricao     string    `gorm:"type:text" json:"descricao"`
	Preco         float64   `gorm:"not null" json:"preco"`
	Categoria     string    `json:"categoria"`
	Subcategoria  string    `json:"subcategoria"`
	Avaliacao     *float64  `json:"avaliacao"`
	ImagemProduto string    `json:"imagemProduto"` // URL informada pelo lojista
	IDLojista     uint      `gorm:"column:id_lojista;not null;index" json:"idLojista"`
	Status        bool      `gorm:"not null;index" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Lojista *Lojista `gorm:"foreignKey:IDLojista" json:"lojista,omitempty"`
}

func (Produto) TableName() string {
	return "produtos"
}
