package service

import "errors"

var (
	ErrUsuarioNotFound   = errors.New("usuario not found")
	ErrLojistaNotFound   = errors.New("lojista not found")
	ErrProdutoNotFound   = errors.New("produto not found")
	ErrValidacaoNotFound = errors.New("validacao not found")

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountBanned          = errors.New("account banned or inactive")
	ErrTooManyAttempts        = errors.New("too many login attempts")

	ErrAlreadyFollowing = errors.New("already following lojista")
	ErrAlreadyFavorited = errors.New("produto already in favoritos")
	ErrInvalidNota      = errors.New("nota must be between 1 and 5")

	ErrGeocodingFailed  = errors.New("failed to geocode address")
	ErrInvalidImageType = errors.New("image content type not allowed")
	ErrImageTooLarge    = errors.New("image exceeds maximum size")
	ErrImageUpload      = errors.New("failed to upload image")

	ErrImagemProdutoRequired = errors.New("imagemProduto is required")
)
