package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorInfo is the client-facing shape of a classified error
type ErrorInfo struct {
	Code    string
	Message string
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err is a unique constraint failure on
// either Postgres or SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate key") || strings.Contains(lower, "unique constraint")
}

// ParseError converte um erro de banco em código e mensagem apresentáveis.
// Detalhes internos (nomes de constraint, SQL) nunca chegam à resposta.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Erro interno do servidor."}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return parseDuplicateKeyError(pgErr.ConstraintName+" "+pgErr.Message, context)
		case pgForeignKeyViolation:
			return parseForeignKeyError(pgErr.ConstraintName+" "+pgErr.Message, context)
		case pgNotNullViolation:
			return ErrorInfo{Code: ValidationRequired, Message: "Campo obrigatório não informado."}
		case pgCheckViolation:
			return ErrorInfo{Code: ValidationInvalidInput, Message: "Dados inválidos."}
		}
	}

	errStr := err.Error()
	errLower := strings.ToLower(errStr)

	// SQLite e mensagens textuais
	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(errStr, context)
	}
	if strings.Contains(errLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}
	if strings.Contains(errLower, "not null constraint") || strings.Contains(errLower, "violates not-null") {
		return ErrorInfo{Code: ValidationRequired, Message: "Campo obrigatório não informado."}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Falha ao conectar a um serviço externo. Tente novamente mais tarde.",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: getDefaultErrorMessage(context)}
}

func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Esse email já está cadastrado."}
	case strings.Contains(errLower, "user_follow_lojistas") || strings.Contains(errLower, "idx_follow_user_lojista"):
		return ErrorInfo{Code: FollowAlreadyExists, Message: "Você já está seguindo este lojista."}
	case strings.Contains(errLower, "produto_favoritos") || strings.Contains(errLower, "idx_favorito_user_produto"):
		return ErrorInfo{Code: FavoritoAlreadyExists, Message: "Produto já está nos favoritos."}
	}

	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Registro já existe."}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "lojista"):
		return ErrorInfo{Code: LojistaNotFound, Message: "Lojista não encontrado."}
	case strings.Contains(errLower, "produto"):
		return ErrorInfo{Code: ProdutoNotFound, Message: "Produto não encontrado."}
	case strings.Contains(errLower, "user") || strings.Contains(errLower, "usuario"):
		return ErrorInfo{Code: UsuarioNotFound, Message: "Usuário não encontrado."}
	}

	return ErrorInfo{Code: ResourceConflict, Message: "Registro relacionado não encontrado."}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "lojista"):
		return "Lojista não encontrado."
	case strings.Contains(contextLower, "produto"):
		return "Produto não encontrado."
	case strings.Contains(contextLower, "validacao"):
		return "Validação não encontrada."
	case strings.Contains(contextLower, "usuario") || strings.Contains(contextLower, "user"):
		return "Usuário não encontrado."
	}

	return "Registro não encontrado."
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Erro ao criar registro."
	case strings.Contains(contextLower, "update"):
		return "Erro ao atualizar registro."
	case strings.Contains(contextLower, "delete"):
		return "Erro ao deletar registro."
	}

	return "Erro interno do servidor."
}

// ParseAndRespond classifies err and writes it as the response body
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
