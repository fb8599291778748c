package model

import "time"

// Lojista é o comerciante dono de uma loja física.
type Lojista struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Nome                 string    `gorm:"not null" json:"nome"`
	Sobrenome            string    `json:"sobrenome"`
	CPF                  string    `gorm:"column:cpf" json:"cpf"`
	DataNasc             string    `gorm:"column:data_nasc" json:"dataNasc"`
	NomeEmpresa          string    `gorm:"index" json:"nomeEmpresa"`
	CNPJ                 string    `gorm:"column:cnpj" json:"cnpj"`
	CEP                  string    `gorm:"column:cep" json:"cep"`
	Logradouro           string    `json:"logradouro"`
	Cidade               string    `json:"cidade"`
	Estado               string    `json:"estado"`
	NumEstab             string    `json:"numEstab"`
	Complemento          string    `json:"complemento"`
	NumContato           string    `json:"numContato"`
	Email                string    `gorm:"uniqueIndex;not null" json:"email"`
	Senha                string    `gorm:"not null" json:"-"`
	Latitude             *float64  `json:"latitude"`
	Longitude            *float64  `json:"longitude"`
	Categoria            string    `gorm:"index" json:"categoria"`
	Subcategoria         string    `json:"subcategoria"`
	Avaliacao            float64   `gorm:"default:0" json:"avaliacao"`        // média das notas, 2 casas
	NumeroAvaliacoes     int       `gorm:"default:0" json:"numeroAvaliacoes"` // total de avaliações
	HorarioFuncionamento string    `json:"horarioFuncionamento"`
	Descricao            string    `gorm:"type:text" json:"descricao"`
	Biografia            string    `gorm:"type:text" json:"biografia"`
	Status               bool      `gorm:"not null" json:"status"`
	ImagemLojista        string    `json:"imagemLojista"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`

	Avaliacoes []Avaliacao `gorm:"foreignKey:LojistaID;constraint:OnDelete:CASCADE" json:"avaliacoes,omitempty"`
	Produtos   []Produto   `gorm:"foreignKey:IDLojista;constraint:OnDelete:CASCADE" json:"-"`
}

func (Lojista) TableName() string {
	return "lojistas"
}

// HasCoordinates reports whether the lojista was geocoded.
func (l *Lojista) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// LojistaResumo is the merchant summary embedded in product listings.
type LojistaResumo struct {
	ID            uint   `json:"id"`
	NomeEmpresa   string `json:"nomeEmpresa"`
	ImagemLojista string `json:"imagemLojista"`
}

func (l *Lojista) Resumo() *LojistaResumo {
	if l == nil {
		return nil
	}
	return &LojistaResumo{ID: l.ID, NomeEmpresa: l.NomeEmpresa, ImagemLojista: l.ImagemLojista}
}
