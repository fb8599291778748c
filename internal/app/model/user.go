package model

import "time"

// User é o consumidor final da plataforma.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Nome       string    `gorm:"not null" json:"nome"`
	CPF        string    `gorm:"column:cpf" json:"cpf"`
	DataNasc   string    `gorm:"column:data_nasc" json:"dataNasc"`
	Telefone   string    `json:"telefone"`
	CEP        string    `gorm:"column:cep" json:"cep"`
	Logradouro string    `json:"logradouro"`
	Bairro     string    `json:"bairro"`
	Cidade     string    `json:"cidade"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Senha      string    `gorm:"not null" json:"-"` // hash bcrypt
	FotoPerfil string    `json:"fotoPerfil"`         // chave da imagem no storage
	Status     bool      `gorm:"not null" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
