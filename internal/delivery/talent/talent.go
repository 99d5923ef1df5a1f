package talent

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
	"github.com/Flamage82/WowTalentComparer/internal/httpresponse"
	"github.com/Flamage82/WowTalentComparer/internal/middleware"
	talentuc "github.com/Flamage82/WowTalentComparer/internal/usecase/talent"
	"github.com/Flamage82/WowTalentComparer/internal/utils"
)

type TalentHandler struct {
	log      *zap.SugaredLogger
	talentUC *talentuc.TalentUseCase
}

type ParseRequest struct {
	ExportString string `json:"exportString"`
}

type DiffRequest struct {
	Baseline  string `json:"baseline"`
	Candidate string `json:"candidate"`
}

func NewTalentHandler(log *zap.SugaredLogger, talentUC *talentuc.TalentUseCase) *TalentHandler {
	return &TalentHandler{
		log:      log,
		talentUC: talentUC,
	}
}

func (h *TalentHandler) Routes(r chi.Router) {
	r.Get("/specs", h.HandleSpecs)
	r.Route("/builds", func(r chi.Router) {
		r.Post("/parse", h.HandleParse)
		r.Post("/diff", h.HandleDiff)
		r.Post("/layout", h.HandleLayout)
	})
	r.Get("/ws/compare", h.HandleCompareStream)
}

func (h *TalentHandler) HandleSpecs(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, h.talentUC.Specs())
}

func (h *TalentHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ExportString) == "" {
		h.fail(w, r, fmt.Errorf("%w: exportString is required", talenterrors.ErrInvalidRequest))
		return
	}

	rec, err := h.talentUC.ParseBuild(r.Context(), req.ExportString)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

func (h *TalentHandler) HandleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.talentUC.CompareBuilds(r.Context(), req.Baseline, req.Candidate)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, res)
}

func (h *TalentHandler) HandleLayout(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !h.decode(w, r, &req) {
		return
	}

	layout, err := h.talentUC.Layout(r.Context(), req.ExportString)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, layout)
}

func (req DiffRequest) validate() error {
	if strings.TrimSpace(req.Baseline) == "" || strings.TrimSpace(req.Candidate) == "" {
		return fmt.Errorf("%w: baseline and candidate are required", talenterrors.ErrInvalidRequest)
	}
	return nil
}

func (h *TalentHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSONRequest(r, dst); err != nil {
		h.fail(w, r, err)
		return false
	}
	return true
}

func (h *TalentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := middleware.Logger(r.Context(), h.log)
	status := httpresponse.StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorw("request failed", "path", r.URL.Path, "error", err)
		httpresponse.WriteError(w, status, errors.New("internal server error"))
		return
	}
	if talenterrors.IsBuildError(err) {
		log.Debugw("build rejected", "path", r.URL.Path, "status", status, "error", err)
	} else {
		log.Infow("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	httpresponse.WriteError(w, status, err)
}
