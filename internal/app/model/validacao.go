package model

import "time"

// Validacao é um cadastro de lojista aguardando aprovação.
type Validacao struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nome        string    `gorm:"not null" json:"nome"`
	Sobrenome   string    `json:"sobrenome"`
	CPF         string    `gorm:"column:cpf" json:"cpf"`
	DataNasc    string    `gorm:"column:data_nasc" json:"dataNasc"`
	NomeEmpresa string    `json:"nomeEmpresa"`
	CNPJ        string    `gorm:"column:cnpj" json:"cnpj"`
	CEP         string    `gorm:"column:cep" json:"cep"`
	Logradouro  string    `json:"logradouro"`
	Cidade      string    `json:"cidade"`
	Estado      string    `json:"estado"`
	NumEstab    string    `json:"numEstab"`
	Complemento string    `json:"complemento"`
	NumContato  string    `json:"numContato"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Senha       string    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Validacao) TableName() string {
	return "validacoes"
}
