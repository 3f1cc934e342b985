package routing

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"code-runner/internal/files"
	"code-runner/internal/languages"
	"code-runner/internal/memory"
	"code-runner/internal/queue"
	"code-runner/internal/repository"
	"code-runner/internal/validation"
)

// DefaultMaxRequestBody is used when the handlers are not given a limit.
const DefaultMaxRequestBody = memory.Megabyte * 2

// UserHeader carries the id of the user making the request, sessions can
// only be updated by the user that created them.
const UserHeader = "X-User-Id"

type Handlers struct {
	Files      files.Files
	Repo       repository.Repository
	Queue      queue.Queue
	Languages  languages.Table
	Translator ut.Translator
	Validator  *validator.Validate

	MaxRequestBody memory.Memory
}

// NewRouter registers every endpoint of the api. The live handler serves the
// websocket rooms and is optional.
func NewRouter(h *Handlers, live http.Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/sessions", h.HandleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions", h.HandleListSessions).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", h.HandleGetSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", h.HandleUpdateSession).Methods(http.MethodPut)

	r.HandleFunc("/run-code", h.HandleRunCode).Methods(http.MethodPost)
	r.HandleFunc("/executions/{id}", h.HandleGetExecution).Methods(http.MethodGet)
	r.HandleFunc("/languages", h.HandleGetLanguages).Methods(http.MethodGet)

	if live != nil {
		r.Handle("/ws", live)
	}

	return r
}

func handleJSONResponse(w http.ResponseWriter, body any, code int) {
	response, err := json.Marshal(body)

	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func handleErrorResponse(w http.ResponseWriter, code int, messages ...string) {
	handleJSONResponse(w, ErrorResponse{Errors: messages, Code: code}, code)
}

// decodeRequest decodes and validates the body into value, writing the
// response itself and returning false when the request cannot be used.
func (h *Handlers) decodeRequest(w http.ResponseWriter, r *http.Request, value any) bool {
	limit := h.MaxRequestBody

	if limit <= 0 {
		limit = DefaultMaxRequestBody
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit.Bytes())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		handleDecodeError(w, err, limit)
		return false
	}

	if err := h.Validator.Struct(value); err != nil {
		handleErrorResponse(w, http.StatusBadRequest, validation.TranslateError(err, h.Translator)...)
		return false
	}

	return true
}

func handleDecodeError(w http.ResponseWriter, err error, limit memory.Memory) {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxError):
		msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
		handleErrorResponse(w, http.StatusBadRequest, msg)

	case errors.Is(err, io.ErrUnexpectedEOF):
		handleErrorResponse(w, http.StatusBadRequest, "Request body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		handleErrorResponse(w, http.StatusBadRequest, msg)

	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		handleErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))

	case errors.Is(err, io.EOF):
		handleErrorResponse(w, http.StatusBadRequest, "Request body must not be empty")

	case errors.As(err, &maxBytesError):
		handleErrorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body must not be larger than %s", limit))

	default:
		log.Error().Err(err).Msg("failed to decode request body")
		handleErrorResponse(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
