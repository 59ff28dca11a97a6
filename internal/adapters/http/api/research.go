package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/seolab/kwscout/internal/app"
	"github.com/seolab/kwscout/internal/domain/model"
	"github.com/seolab/kwscout/internal/domain/stats"
)

// ResearchHandler handles POST /api/research requests.
type ResearchHandler struct {
	svc Researcher
}

// NewResearchHandler creates a new research handler.
func NewResearchHandler(svc Researcher) *ResearchHandler {
	return &ResearchHandler{svc: svc}
}

// researchRequest mirrors the request schema for POST /api/research.
type researchRequest struct {
	Seeds  []string `json:"seeds"`
	Budget string   `json:"budget,omitempty"`
	Goals  []string `json:"goals,omitempty"`
	// Report requests the plain-text analysis report alongside the records.
	Report bool `json:"report,omitempty"`
}

func (r researchRequest) validate() error {
	if len(r.Seeds) == 0 {
		return errors.New("missing seeds")
	}
	for _, s := range r.Seeds {
		if strings.TrimSpace(s) != "" {
			return nil
		}
	}
	return errors.New("seeds contain no usable keywords")
}

// researchResponse extends the service result with the optional report.
type researchResponse struct {
	app.Result
	Report string `json:"report,omitempty"`
}

// HandleResearch handles POST /api/research.
func (h *ResearchHandler) HandleResearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goals := make([]model.CampaignGoal, 0, len(req.Goals))
	for _, g := range req.Goals {
		goals = append(goals, model.CampaignGoal(g))
	}

	result, err := h.svc.Research(r.Context(), app.Request{
		Seeds:  req.Seeds,
		Budget: model.BudgetTier(req.Budget),
		Goals:  goals,
	})
	switch {
	case errors.Is(err, app.ErrNoSeeds):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, app.ErrNoResults):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "research failed")
		return
	}

	resp := researchResponse{Result: result}
	if req.Report {
		resp.Report = stats.Report(result.Summary)
	}
	writeJSON(w, http.StatusOK, resp)
}
