package model

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Lojista{},
		&Produto{},
		&Validacao{},
		&Avaliacao{},
		&UserFollowLojista{},
		&ProdutoFavorito{},
		&OrphanImage{},
	}
}
