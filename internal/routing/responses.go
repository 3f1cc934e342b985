package routing

import (
	"code-runner/internal/repository"
)

type ErrorResponse struct {
	Errors []string `json:"errors"`
	Code   int      `json:"code"`
}

type QueueRunResponse struct {
	ID string `json:"id"`
}

type SessionsResponse struct {
	Sessions   []repository.Session `json:"sessions"`
	TotalCount int64                `json:"totalCount"`
}

type ExecutionResponse struct {
	*repository.Execution

	Output    string `json:"output"`
	OutputErr string `json:"outputErr"`
}

type LanguagesResponse struct {
	Languages []string `json:"languages"`
}
