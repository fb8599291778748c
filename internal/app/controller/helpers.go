package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/AvancyBrasil/API-Find/internal/app/service"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/AvancyBrasil/API-Find/internal/middleware"
	"github.com/gin-gonic/gin"
)

// errorMapping is how a service sentinel is presented to the client.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var serviceErrorMappings = []errorMapping{
	{service.ErrUsuarioNotFound, http.StatusNotFound, apperrors.UsuarioNotFound, "Usuário não encontrado."},
	{service.ErrLojistaNotFound, http.StatusNotFound, apperrors.LojistaNotFound, "Lojista não encontrado."},
	{service.ErrProdutoNotFound, http.StatusNotFound, apperrors.ProdutoNotFound, "Produto não encontrado."},
	{service.ErrValidacaoNotFound, http.StatusNotFound, apperrors.ValidacaoNotFound, "Validação não encontrada."},
	{service.ErrEmailAlreadyRegistered, http.StatusBadRequest, apperrors.AuthEmailAlreadyExists, "Esse email já está cadastrado."},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Email ou senha incorretos!"},
	{service.ErrAccountBanned, http.StatusForbidden, apperrors.AuthAccountBanned, "Conta banida ou inativa."},
	{service.ErrTooManyAttempts, http.StatusTooManyRequests, apperrors.AuthTooManyAttempts, "Muitas tentativas de login. Tente novamente mais tarde."},
	{service.ErrAlreadyFollowing, http.StatusBadRequest, apperrors.FollowAlreadyExists, "Você já está seguindo este lojista."},
	{service.ErrAlreadyFavorited, http.StatusBadRequest, apperrors.FavoritoAlreadyExists, "Produto já está nos favoritos."},
	{service.ErrInvalidNota, http.StatusBadRequest, apperrors.AvaliacaoInvalidNota, "A nota deve estar entre 1 e 5."},
	{service.ErrImagemProdutoRequired, http.StatusBadRequest, apperrors.ValidationRequired, "Link da imagem é necessário"},
	{service.ErrInvalidImageType, http.StatusBadRequest, apperrors.UploadInvalidFileType, "Apenas arquivos de imagem são permitidos."},
	{service.ErrImageTooLarge, http.StatusBadRequest, apperrors.UploadFileTooLarge, "A imagem deve ter no máximo 5 MB."},
	{service.ErrImageUpload, http.StatusInternalServerError, apperrors.UploadFailed, "Erro ao enviar a imagem."},
	{service.ErrGeocodingFailed, http.StatusInternalServerError, apperrors.InternalGeocodeError, "Erro ao obter coordenadas da API."},
	{service.ErrInvalidEmailHeader, http.StatusBadRequest, apperrors.ValidationInvalidInput, "Destinatário e assunto não podem conter quebras de linha."},
	{service.ErrEmailSend, http.StatusInternalServerError, apperrors.InternalMailError, "Erro ao enviar email."},
}

// respondServiceError writes err as an error response. Unknown errors are
// classified by apperrors.ParseError and answered with 500.
func respondServiceError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	var reqErr *service.RequiredFieldsError
	if errors.As(err, &reqErr) {
		fields := make(map[string]string, len(reqErr.Fields))
		for _, f := range reqErr.Fields {
			fields[f] = "obrigatório"
		}
		log.Warn("Request missing required fields", map[string]interface{}{
			"context": context,
			"fields":  reqErr.Fields,
		})
		apperrors.RespondWithValidationError(c, "Campos obrigatórios ausentes: "+strings.Join(reqErr.Fields, ", ")+".", fields)
		return
	}

	for _, m := range serviceErrorMappings {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				log.Error("Request failed", err, map[string]interface{}{"context": context})
			} else {
				log.Warn("Request rejected", map[string]interface{}{
					"context": context,
					"reason":  err.Error(),
				})
			}
			apperrors.RespondWithError(c, m.status, m.code, m.message)
			return
		}
	}

	log.Error("Unexpected error", err, map[string]interface{}{"context": context})
	apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
}

func parseUint(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// paramID reads a positive id path parameter, answering 400 when it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, ok := parseUint(c.Param(name))
	if !ok {
		middleware.GetLoggerFromContext(c).Warn("Invalid id parameter", map[string]interface{}{
			"param": name,
			"value": c.Param(name),
		})
		apperrors.InvalidID(c)
	}
	return id, ok
}

// queryCoordinates parses latitude and longitude from the query string.
// present is false when neither was given.
func queryCoordinates(c *gin.Context) (point service.Point, present bool, err error) {
	latRaw, lngRaw := c.Query("latitude"), c.Query("longitude")
	if latRaw == "" && lngRaw == "" {
		return service.Point{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return service.Point{}, true, errors.New("invalid coordinates")
	}
	return service.Point{Latitude: lat, Longitude: lng}, true, nil
}

// requireCoordinates is queryCoordinates for routes where both are mandatory.
func requireCoordinates(c *gin.Context) (service.Point, bool) {
	point, present, err := queryCoordinates(c)
	if !present || err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidCoord, "Latitude e longitude são obrigatórios.")
		return service.Point{}, false
	}
	return point, true
}

func badCoordinates(c *gin.Context) {
	apperrors.BadRequest(c, apperrors.ValidationInvalidCoord, "Latitude e longitude inválidas.")
}

// formImage extracts an optional image from a multipart form. It returns nil
// when the field is absent or the request is not multipart.
func formImage(c *gin.Context, field string) (*service.ImageUpload, io.Closer, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil, nil
	}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*service.ImageUpload, io.Closer, error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}

func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// statusRequest is the body of the ban/activate routes. A pointer tells a
// missing field from false.
type statusRequest struct {
	Status *bool `json:"status"`
}

func bindStatus(c *gin.Context) (bool, bool) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "O campo status deve ser um valor booleano.")
		return false, false
	}
	return *req.Status, true
}

func invalidBody(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
		"error": err.Error(),
	})
	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados inválidos.")
}

func invalidID(c *gin.Context, raw string) {
	middleware.GetLoggerFromContext(c).Warn("Invalid id query", map[string]interface{}{
		"value": raw,
	})
	apperrors.InvalidID(c)
}
