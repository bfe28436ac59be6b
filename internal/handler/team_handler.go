package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"workspace-service/internal/service"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

type createTeamRequest struct {
	Title string `json:"title"`
}

type membershipResponse struct {
	IsMember bool `json:"is_member"`
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return
	}

	members, err := h.teamService.Members(r.Context(), teamID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *TeamHandler) GetMembersDifference(w http.ResponseWriter, r *http.Request) {
	teamA, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return
	}
	teamB, err := uuid.Parse(chi.URLParam(r, "otherId"))
	if err != nil {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return
	}

	members, err := h.teamService.MembersDifference(r.Context(), teamA, teamB)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *TeamHandler) GetMembership(w http.ResponseWriter, r *http.Request) {
	teamID, userID, ok := teamMemberParams(w, r)
	if !ok {
		return
	}

	isMember, err := h.teamService.IsMember(r.Context(), teamID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, membershipResponse{IsMember: isMember})
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	teamID, userID, ok := teamMemberParams(w, r)
	if !ok {
		return
	}

	if err := h.teamService.AddMember(r.Context(), teamID, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, userID, ok := teamMemberParams(w, r)
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(r.Context(), teamID, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func teamMemberParams(w http.ResponseWriter, r *http.Request) (teamID, userID uuid.UUID, ok bool) {
	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	userID, err = uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return teamID, userID, true
}
