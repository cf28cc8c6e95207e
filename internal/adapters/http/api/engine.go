package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/okian/lineup/internal/domain/model"
)

// maxSlots bounds the formations accepted over HTTP. The matcher works on a
// square matrix as wide as the larger of roster and slot count.
const maxSlots = 64

// formationLimits is registered on every model.Formation a request carries.
func formationLimits(sl validator.StructLevel) {
	f, ok := sl.Current().Interface().(model.Formation)
	if !ok {
		return
	}
	if len(f.Slots) > maxSlots {
		sl.ReportError(f.Slots, "Slots", "slots", "max", strconv.Itoa(maxSlots))
	}
}

// assignRequest is the body of POST /assign and POST /positions.
type assignRequest struct {
	Team      string          `json:"team" validate:"max=64"`
	Roster    []model.Player  `json:"roster" validate:"max=500"`
	Formation model.Formation `json:"formation"`
}

// swapRequest is the body of POST /swap.
type swapRequest struct {
	SourceID     string          `json:"source_id" validate:"required"`
	TargetSlotID string          `json:"target_slot_id" validate:"required"`
	TargetID     string          `json:"target_id"`
	Roster       []model.Player  `json:"roster" validate:"max=500"`
	Formation    model.Formation `json:"formation"`
}

// analysisRequest is the body of POST /analysis.
type analysisRequest struct {
	Roster    []model.Player  `json:"roster" validate:"max=500"`
	Formation model.Formation `json:"formation"`
}

type positionsResponse struct {
	Roster []model.Player `json:"roster"`
}

// handleAssign handles POST /assign.
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	const op = "api.assign"
	var req assignRequest
	if !s.decode(w, r, op, &req) {
		return
	}
	res, err := s.deps.AutoAssign(r.Context(), req.Roster, req.Formation, req.Team)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSwap handles POST /swap.
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	const op = "api.swap"
	var req swapRequest
	if !s.decode(w, r, op, &req) {
		return
	}
	advice, err := s.deps.SmartSwap(r.Context(), req.SourceID, req.TargetSlotID, req.TargetID, req.Formation, req.Roster)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

// handleAnalysis handles POST /analysis.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.analysis"
	var req analysisRequest
	if !s.decode(w, r, op, &req) {
		return
	}
	rep, err := s.deps.Analyze(r.Context(), req.Formation, req.Roster)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handlePositions handles POST /positions.
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	const op = "api.positions"
	var req assignRequest
	if !s.decode(w, r, op, &req) {
		return
	}
	roster, err := s.deps.UpdatePositions(r.Context(), req.Roster, req.Formation, req.Team)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, positionsResponse{Roster: roster})
}
