package errors

// Códigos de erro
// Formato: CATEGORIA_DETALHE
// O front-end mapeia as mensagens a partir destes códigos.

const (
	// ==================== Autenticação (AUTH_) ====================
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // email ou senha incorretos
	AuthAccountBanned      = "AUTH_ACCOUNT_BANNED"      // conta banida/inativa
	AuthTooManyAttempts    = "AUTH_TOO_MANY_ATTEMPTS"   // limite de tentativas
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // email duplicado

	// ==================== Validação (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"
	ValidationInvalidCoord = "VALIDATION_INVALID_COORDINATES"

	// ==================== Recursos (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Domínio ====================
	UsuarioNotFound       = "USUARIO_NOT_FOUND"
	LojistaNotFound       = "LOJISTA_NOT_FOUND"
	ProdutoNotFound       = "PRODUTO_NOT_FOUND"
	ValidacaoNotFound     = "VALIDACAO_NOT_FOUND"
	FollowAlreadyExists   = "FOLLOW_ALREADY_EXISTS"
	FavoritoAlreadyExists = "FAVORITO_ALREADY_EXISTS"
	AvaliacaoInvalidNota  = "AVALIACAO_INVALID_NOTA"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Interno (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalGeocodeError  = "INTERNAL_GEOCODE_ERROR"
	InternalMailError     = "INTERNAL_MAIL_ERROR"
)
