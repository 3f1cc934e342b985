package routing

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"code-runner/internal/files"
	"code-runner/internal/queue"
	"code-runner/internal/repository"
	"code-runner/internal/runner"
)

// HandleRunCode records the execution and queues it, the output is streamed
// to the session room once a worker picks it up.
func (h *Handlers) HandleRunCode(w http.ResponseWriter, r *http.Request) {
	var request RunCodeRequest

	if !h.decodeRequest(w, r, &request) {
		return
	}

	if request.SessionID != "" {
		if _, err := h.Repo.GetSession(request.SessionID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				handleErrorResponse(w, http.StatusNotFound, "the session does not exist by the provided id.")
				return
			}

			log.Error().Err(err).Str("session", request.SessionID).Msg("failed to get session")
			handleErrorResponse(w, http.StatusInternalServerError, "failed to execute run request")

			return
		}
	}

	message := &queue.CompileMessage{
		ID:        uuid.NewString(),
		SessionID: request.SessionID,
		Language:  request.Language,
		Code:      request.Code,
	}

	if err := h.Repo.InsertExecution(&repository.Execution{
		ID:        message.ID,
		SessionID: message.SessionID,
		Language:  message.Language,
		Status:    runner.NotRan.String(),
		ExitCode:  -1,
	}); err != nil {
		log.Error().Err(err).Object("message", message).Msg("failed to insert execution")
		handleErrorResponse(w, http.StatusInternalServerError, "failed to execute run request")

		return
	}

	data, err := queue.EncodeMessage(message)

	if err == nil {
		err = h.Queue.SubmitMessageToQueue(data)
	}

	if err != nil {
		log.Error().Err(err).Object("message", message).Msg("failed to submit execution")
		handleErrorResponse(w, http.StatusInternalServerError, "failed to execute run request")

		return
	}

	handleJSONResponse(w, QueueRunResponse{ID: message.ID}, http.StatusOK)
}

func (h *Handlers) HandleGetExecution(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)

	if !ok {
		return
	}

	execution, err := h.Repo.GetExecution(id)

	if errors.Is(err, repository.ErrNotFound) {
		handleErrorResponse(w, http.StatusNotFound, "the execution does not exist by the provided id.")
		return
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get execution")
		handleErrorResponse(w, http.StatusInternalServerError, "failed to get execution")

		return
	}

	resp := ExecutionResponse{Execution: execution}

	if data, outputErr := h.Files.GetFile(id, files.OutputFile); outputErr == nil {
		resp.Output = string(data)
	}

	if data, outputErr := h.Files.GetFile(id, files.OutputErrFile); outputErr == nil {
		resp.OutputErr = string(data)
	}

	handleJSONResponse(w, resp, http.StatusOK)
}
