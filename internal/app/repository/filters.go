package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Condition is one WHERE clause with its bound arguments.
type Condition struct {
	Query string
	Args  []interface{}
}

// containsCI builds a case-insensitive substring match on column.
func containsCI(column, value string) Condition {
	return Condition{
		Query: fmt.Sprintf("LOWER(%s) LIKE ?", column),
		Args:  []interface{}{"%" + strings.ToLower(value) + "%"},
	}
}

func applyConditions(db *gorm.DB, conditions []Condition) *gorm.DB {
	for _, cond := range conditions {
		db = db.Where(cond.Query, cond.Args...)
	}
	return db
}

// UserFilter holds the optional query filters of GET /usuarios.
// Empty fields are ignored.
type UserFilter struct {
	Nome  string
	Email string
}

func (f UserFilter) Predicate() []Condition {
	var conds []Condition
	if f.Nome != "" {
		conds = append(conds, containsCI("nome", f.Nome))
	}
	if f.Email != "" {
		conds = append(conds, containsCI("email", f.Email))
	}
	return conds
}

// LojistaFilter holds the optional filters for merchant listings and searches.
type LojistaFilter struct {
	Nome            string
	Email           string
	Categoria       string
	Termo           string // matches nome or nomeEmpresa
	WithCoordinates bool
	MinAvaliacao    *float64
}

func (f LojistaFilter) Predicate() []Condition {
	var conds []Condition
	if f.Nome != "" {
		conds = append(conds, containsCI("nome", f.Nome))
	}
	if f.Email != "" {
		conds = append(conds, containsCI("email", f.Email))
	}
	if f.Categoria != "" {
		conds = append(conds, containsCI("categoria", f.Categoria))
	}
	if f.Termo != "" {
		like := "%" + strings.ToLower(f.Termo) + "%"
		conds = append(conds, Condition{
			Query: "(LOWER(nome) LIKE ? OR LOWER(nome_empresa) LIKE ?)",
			Args:  []interface{}{like, like},
		})
	}
	if f.WithCoordinates {
		conds = append(conds, Condition{Query: "latitude IS NOT NULL AND longitude IS NOT NULL"})
	}
	if f.MinAvaliacao != nil {
		conds = append(conds, Condition{Query: "avaliacao >= ?", Args: []interface{}{*f.MinAvaliacao}})
	}
	return conds
}

// ProdutoFilter holds the optional filters for product listings.
type ProdutoFilter struct {
	Nome       string
	IDLojista  uint
	LojistaIDs []uint
	OnlyActive bool
}

func (f ProdutoFilter) Predicate() []Condition {
	var conds []Condition
	if f.Nome != "" {
		conds = append(conds, containsCI("nome", f.Nome))
	}
	if f.IDLojista != 0 {
		conds = append(conds, Condition{Query: "id_lojista = ?", Args: []interface{}{f.IDLojista}})
	}
	if f.LojistaIDs != nil {
		conds = append(conds, Condition{Query: "id_lojista IN ?", Args: []interface{}{f.LojistaIDs}})
	}
	if f.OnlyActive {
		conds = append(conds, Condition{Query: "status = ?", Args: []interface{}{true}})
	}
	return conds
}

type ValidacaoFilter struct {
	Nome  string
	Email string
}

func (f ValidacaoFilter) Predicate() []Condition {
	var conds []Condition
	if f.Nome != "" {
		conds = append(conds, containsCI("nome", f.Nome))
	}
	if f.Email != "" {
		conds = append(conds, containsCI("email", f.Email))
	}
	return conds
}
