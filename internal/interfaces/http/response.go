package http

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// validate es seguro para uso concurrente y cachea los structs ya analizados.
var validate = validator.New()

// requestError error de la petición (cuerpo, parámetros o validación) con su respuesta HTTP.
type requestError struct {
	status  int
	code    string
	message string
	details []dto.FieldError
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) *requestError {
	return &requestError{status: fiber.StatusBadRequest, code: code, message: message}
}

// bindBody parsea el cuerpo JSON y ejecuta las reglas `validate` del DTO.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("INVALID_BODY", "cuerpo inválido")
	}
	return validateStruct(out)
}

// bindQuery parsea la query string y la valida.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return badRequest("INVALID_QUERY", "parámetros de consulta inválidos")
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return badRequest("VALIDATION", "entrada inválida")
	}
	details := make([]dto.FieldError, 0, len(ve))
	for _, fe := range ve {
		details = append(details, dto.FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return &requestError{
		status:  fiber.StatusBadRequest,
		code:    "VALIDATION",
		message: "la validación falló",
		details: details,
	}
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("INVALID_ID", name+" debe ser un entero positivo")
	}
	return id, nil
}

// ErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
// Con maskForbidden un acceso denegado se responde como 404 para no revelar que el registro existe.
func ErrorHandler(log *logger.Logger, maskForbidden bool) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status, body := errorResponse(err, maskForbidden)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}

func errorResponse(err error, maskForbidden bool) (int, dto.ErrorResponse) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.status, dto.ErrorResponse{Code: reqErr.code, Message: reqErr.message, Details: reqErr.details}
	}
	var verr *access.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: verr.Code, Message: verr.Message}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message}
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		if maskForbidden {
			return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()}
		}
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: domain.ErrForbidden.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrNoCustomerProfile):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "NO_CUSTOMER_PROFILE", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "ERROR"
}
