package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the JSON body of every error response.
type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type mapping struct {
	status  int
	message string
}

// Business codes raised by the schedule use cases.
var businessCodes = map[string]mapping{
	"invalid_field_path": {http.StatusBadRequest, "Caminho de campo inválido."},
	"invalid_field":      {http.StatusBadRequest, "Campo inválido."},
	"invalid_weekday":    {http.StatusBadRequest, "Dia da semana inválido."},
	"invalid_time":       {http.StatusBadRequest, "Horário inválido."},
	"invalid_time_slots": {http.StatusBadRequest, "Lista de horários inválida."},
	"nothing_to_update":  {http.StatusBadRequest, "Nada para atualizar."},
	"record_not_found":   {http.StatusNotFound, "Registro não encontrado."},
	"session_not_found":  {http.StatusNotFound, "Sessão de edição não encontrada."},
	"field_write_failed": {http.StatusBadGateway, "Não foi possível salvar o campo."},
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{Code: code, Message: message})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// FromError writes a business error with its mapped status. Unmapped
// business codes are a 400 and anything else a 500 with the fallback.
func FromError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, fallbackCode, fallbackMessage)
		return
	}
	m, ok := businessCodes[be.Code]
	if !ok {
		m = mapping{http.StatusBadRequest, be.Code}
	}
	Write(c, m.status, be.Code, m.message)
}
