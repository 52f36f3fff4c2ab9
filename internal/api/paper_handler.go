package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/question-api/internal/api/shared"
	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/platform/logger"
	"github.com/phrazzld/question-api/internal/store"
)

// Paper response messages.
const (
	MsgPaperCreated  = "Paper created successfully"
	MsgPapersFetched = "Papers fetched successfully"
	MsgPaperFetched  = "Paper fetched successfully"
	MsgPaperUpdated  = "Paper updated successfully"
	MsgPaperDeleted  = "Paper deleted successfully!"
	MsgPaperNotFound = "Paper not found"
)

// PaperHandler handles paper-related HTTP requests
type PaperHandler struct {
	papers store.PaperStore
	policy StatusPolicy
	logger *slog.Logger
}

// NewPaperHandler creates a new PaperHandler
func NewPaperHandler(papers store.PaperStore, policy StatusPolicy, logger *slog.Logger) *PaperHandler {
	if papers == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("papers store cannot be nil for PaperHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PaperHandler")
	}

	return &PaperHandler{
		papers: papers,
		policy: policy,
		logger: logger.With(slog.String("component", "paper_handler")),
	}
}

// CreatePaper handles POST /api/papers requests.
// The author is always the authenticated caller.
func (h *PaperHandler) CreatePaper(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	authorID, ok := requireIdentity(w, r, h.policy, h.logger)
	if !ok {
		return
	}

	var req PaperRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondFailure(w, r, h.policy.Failure(err), err)
		return
	}

	paper, err := domain.NewPaper(req.Title, req.Content, authorID)
	if err != nil {
		shared.RespondFailure(w, r, h.policy.Failure(err), err)
		return
	}

	if err := h.papers.Create(r.Context(), paper); err != nil {
		shared.RespondFailure(w, r, h.policy.Failure(err), err)
		return
	}

	log.Debug("paper created",
		slog.String("paper_id", paper.ID),
		slog.String("author_id", authorID))
	shared.RespondSuccess(w, r, http.StatusCreated, MsgPaperCreated, paper)
}

// ListPapers handles GET /api/papers requests. Authors are populated.
func (h *PaperHandler) ListPapers(w http.ResponseWriter, r *http.Request) {
	papers, err := h.papers.List(r.Context())
	if err != nil {
		shared.RespondFailure(w, r, h.policy.Failure(err), err)
		return
	}
	if papers == nil {
		papers = []*domain.Paper{}
	}
	shared.RespondSuccess(w, r, h.policy.Collection(), MsgPapersFetched, papers)
}

// GetPaper handles GET /api/papers/{id} requests. The author is populated.
func (h *PaperHandler) GetPaper(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "Paper")
	if err != nil {
		shared.RespondFailure(w, r, h.policy.Failure(err), err)
		return
	}

	outcome := Classify(h.papers.GetByID(r.Context(), id))
	h.logOutcome(r, "get", id, outcome.Kind)
	respondOutcome(w, r, h.policy, outcome, http.StatusOK, MsgPaperFetched, MsgPaperNotFound, asBody[*domain.Paper])
}

// UpdatePaper handles PUT /api/papers/{id} requests. Only title and content
// can change; omitted fields keep their stored values.
func (h *PaperHandler) UpdatePaper(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "Paper")
	if err != nil {
		shared.RespondFailure(w, r, h.policy.Failure(err), err)
		return
	}

	var patch domain.PaperPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		shared.RespondFailure(w, r, h.policy.Failure(err), err)
		return
	}
	if patch.IsEmpty() {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("paper update carries no field changes", slog.String("paper_id", id))
	}

	outcome := Classify(h.papers.Update(r.Context(), id, patch))
	h.logOutcome(r, "update", id, outcome.Kind)
	respondOutcome(w, r, h.policy, outcome, h.policy.Collection(), MsgPaperUpdated, MsgPaperNotFound, asBody[*domain.Paper])
}

// DeletePaper handles DELETE /api/papers/{id} requests.
func (h *PaperHandler) DeletePaper(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "Paper")
	if err != nil {
		shared.RespondFailure(w, r, h.policy.Failure(err), err)
		return
	}

	outcome := Classify(h.papers.Delete(r.Context(), id))
	h.logOutcome(r, "delete", id, outcome.Kind)
	respondOutcome(w, r, h.policy, outcome, h.policy.Collection(), MsgPaperDeleted, MsgPaperNotFound, nil)
}

func (h *PaperHandler) logOutcome(r *http.Request, op, id string, kind OutcomeKind) {
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("paper store call finished",
		slog.String("operation", op),
		slog.String("paper_id", id),
		slog.String("outcome", kind.String()))
}
