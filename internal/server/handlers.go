package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// OverlayProvider serves the analytics overlay.
type OverlayProvider interface {
	Overlay(ctx context.Context) (domain.Overlay, error)
}

// CharacterQueries answers path and lookup queries.
type CharacterQueries interface {
	ShortestPath(ctx context.Context, start, end string) (domain.PathResult, error)
	Names() []string
	Nodes() []domain.NodeRef
	Edges() []domain.LabeledEdge
	Lookup(key string) (domain.CharacterRecord, error)
	Expand(key string) domain.Neighborhood
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger     *slog.Logger
	analytics  OverlayProvider
	characters CharacterQueries
	validate   *validator.Validate
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, analytics OverlayProvider, characters CharacterQueries) *APIHandlers {
	return &APIHandlers{
		logger:     logger,
		analytics:  analytics,
		characters: characters,
		validate:   validator.New(),
	}
}

func (h *APIHandlers) handleSocialNetworkData(w http.ResponseWriter, r *http.Request) {
	overlay, err := h.analytics.Overlay(r.Context())
	if err != nil {
		h.logger.Error("failed to compute analytics overlay", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute analytics overlay")
		return
	}
	respondJSON(w, http.StatusOK, newOverlayResponse(overlay))
}

type shortestPathRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

func (h *APIHandlers) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	var req shortestPathRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	path, err := h.characters.ShortestPath(r.Context(), req.Start, req.End)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "character not found")
		return
	case errors.Is(err, domain.ErrNoPath):
		writeError(w, http.StatusNotFound, "no path between characters")
		return
	default:
		h.logger.Error("shortest path failed", "error", err, "start", req.Start, "end", req.End)
		writeError(w, http.StatusInternalServerError, "failed to compute shortest path")
		return
	}

	respondJSON(w, http.StatusOK, newPathResponse(path))
}

func (h *APIHandlers) handleCharacters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.characters.Names())
}

func (h *APIHandlers) handleAllNodes(w http.ResponseWriter, r *http.Request) {
	nodes := h.characters.Nodes()
	out := make([]nodeRefDTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, newNodeRef(n))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *APIHandlers) handleAllRels(w http.ResponseWriter, r *http.Request) {
	edges := h.characters.Edges()
	out := make([]labeledEdgeDTO, 0, len(edges))
	for _, e := range edges {
		out = append(out, newLabeledEdge(e))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *APIHandlers) handleInit(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	record, err := h.characters.Lookup(key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		h.logger.Error("character lookup failed", "error", err, "id", key)
		writeError(w, http.StatusInternalServerError, "failed to look up character")
		return
	}
	respondJSON(w, http.StatusOK, neighborhoodResponse{
		Nodes: []domain.CharacterRecord{record},
		Links: []domain.RawLink{},
	})
}

func (h *APIHandlers) handleExpand(w http.ResponseWriter, r *http.Request) {
	hood := h.characters.Expand(chi.URLParam(r, "id"))
	respondJSON(w, http.StatusOK, neighborhoodResponse{Nodes: hood.Nodes, Links: hood.Links})
}

type overlayResponse struct {
	Nodes  []overlayNodeDTO  `json:"nodes"`
	Links  []weightedEdgeDTO `json:"links"`
	Movies []movieDTO        `json:"movies"`
}

type overlayNodeDTO struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Community       int     `json:"community"`
	PageRank        float64 `json:"pagerank"`
	Degree          int     `json:"degree"`
	ScreenTime      int     `json:"screenTime"`
	FirstAppearance int     `json:"firstAppearance"`
	Alignment       string  `json:"alignment"`
}

type weightedEdgeDTO struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight int `json:"weight"`
}

type movieDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
}

func newOverlayResponse(o domain.Overlay) overlayResponse {
	resp := overlayResponse{
		Nodes:  make([]overlayNodeDTO, 0, len(o.Nodes)),
		Links:  make([]weightedEdgeDTO, 0, len(o.Links)),
		Movies: make([]movieDTO, 0, len(o.Movies)),
	}
	for _, n := range o.Nodes {
		resp.Nodes = append(resp.Nodes, overlayNodeDTO(n))
	}
	for _, l := range o.Links {
		resp.Links = append(resp.Links, weightedEdgeDTO(l))
	}
	for _, m := range o.Movies {
		resp.Movies = append(resp.Movies, movieDTO(m))
	}
	return resp
}

// Labeled graph ids are served as strings, which is what path consumers key on.
type nodeRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type labeledEdgeDTO struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

type pathResponse struct {
	Nodes []nodeRefDTO     `json:"nodes"`
	Rels  []labeledEdgeDTO `json:"rels"`
}

func newNodeRef(n domain.NodeRef) nodeRefDTO {
	return nodeRefDTO{ID: strconv.Itoa(n.ID), Name: n.Name}
}

func newLabeledEdge(e domain.LabeledEdge) labeledEdgeDTO {
	return labeledEdgeDTO{Source: strconv.Itoa(e.Source), Target: strconv.Itoa(e.Target), Type: e.Type}
}

func newPathResponse(p domain.PathResult) pathResponse {
	resp := pathResponse{
		Nodes: make([]nodeRefDTO, 0, len(p.Nodes)),
		Rels:  make([]labeledEdgeDTO, 0, len(p.Edges)),
	}
	for _, n := range p.Nodes {
		resp.Nodes = append(resp.Nodes, newNodeRef(n))
	}
	for _, e := range p.Edges {
		resp.Rels = append(resp.Rels, newLabeledEdge(e))
	}
	return resp
}

type neighborhoodResponse struct {
	Nodes []domain.CharacterRecord `json:"nodes"`
	Links []domain.RawLink         `json:"links"`
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
