package routing

import (
	"net/http"
)

func (h *Handlers) HandleGetLanguages(w http.ResponseWriter, _ *http.Request) {
	handleJSONResponse(w, LanguagesResponse{Languages: h.Languages.Languages()}, http.StatusOK)
}
