package model

import "time"

type Avaliacao struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LojistaID  uint      `gorm:"not null;index" json:"lojistaId"`
	UsuarioID  uint      `gorm:"not null;index" json:"usuarioId"`
	Nota       int       `gorm:"not null" json:"nota"` // 1 a 5
	Comentario string    `gorm:"type:text" json:"comentario"`
	CreatedAt  time.Time `json:"createdAt"`

	Usuario *User `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
}

func (Avaliacao) TableName() string {
	return "avaliacoes"
}

const (
	NotaMinima = 1
	NotaMaxima = 5
)

func NotaValida(nota int) bool {
	return nota >= NotaMinima && nota <= NotaMaxima
}
