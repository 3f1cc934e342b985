package routing

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"code-runner/internal/repository"
)

func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var request CreateSessionRequest

	if !h.decodeRequest(w, r, &request) {
		return
	}

	session := &repository.Session{
		ID:          uuid.NewString(),
		Language:    request.Language,
		Content:     request.Content,
		Title:       request.Title,
		Description: request.Description,
		Tags:        request.Tags,
		UserID:      r.Header.Get(UserHeader),
	}

	if err := h.Repo.InsertSession(session); err != nil {
		log.Error().Err(err).Msg("failed to insert session")
		handleErrorResponse(w, http.StatusInternalServerError, "failed to create session")

		return
	}

	handleJSONResponse(w, session, http.StatusCreated)
}

func (h *Handlers) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	page, pageErr := queryInt(r, "page", 1)
	limit, limitErr := queryInt(r, "limit", repository.DefaultPageLimit)

	if pageErr != nil || limitErr != nil {
		handleErrorResponse(w, http.StatusBadRequest, "page and limit must be numbers")
		return
	}

	sessions, total, err := h.Repo.ListSessions(page, limit)

	if err != nil {
		log.Error().Err(err).Msg("failed to list sessions")
		handleErrorResponse(w, http.StatusInternalServerError, "failed to list sessions")

		return
	}

	if sessions == nil {
		sessions = []repository.Session{}
	}

	handleJSONResponse(w, SessionsResponse{Sessions: sessions, TotalCount: total}, http.StatusOK)
}

func (h *Handlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)

	if !ok {
		return
	}

	session, err := h.Repo.GetSession(id)

	if errors.Is(err, repository.ErrNotFound) {
		handleErrorResponse(w, http.StatusNotFound, "the session does not exist by the provided id.")
		return
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get session")
		handleErrorResponse(w, http.StatusInternalServerError, "failed to get session")

		return
	}

	handleJSONResponse(w, session, http.StatusOK)
}

func (h *Handlers) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)

	if !ok {
		return
	}

	var request UpdateSessionRequest

	if !h.decodeRequest(w, r, &request) {
		return
	}

	session, err := h.Repo.UpdateSession(id, r.Header.Get(UserHeader), repository.Session{
		Language:    request.Language,
		Content:     request.Content,
		Title:       request.Title,
		Description: request.Description,
		Tags:        request.Tags,
	})

	if errors.Is(err, repository.ErrNotFound) {
		handleErrorResponse(w, http.StatusNotFound, "the session does not exist by the provided id.")
		return
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update session")
		handleErrorResponse(w, http.StatusInternalServerError, "failed to update session")

		return
	}

	handleJSONResponse(w, session, http.StatusOK)
}

// pathID returns the uuid in the path, writing a bad request when it is
// missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	value, ok := mux.Vars(r)["id"]

	if !ok {
		handleErrorResponse(w, http.StatusBadRequest, "no or invalid id provided.")
		return "", false
	}

	parsed, err := uuid.Parse(value)

	if err != nil {
		handleErrorResponse(w, http.StatusBadRequest, "failed to parse id value")
		return "", false
	}

	return parsed.String(), true
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	value := r.URL.Query().Get(key)

	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}
