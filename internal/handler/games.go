package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/minigame"
)

// PlayRequest carries game input; only the safe reads Guess
type PlayRequest struct {
	Guess string `json:"guess" validate:"omitempty,digits3"`
}

// GameHandlers serves mini-game endpoints
type GameHandlers struct {
	svc minigame.Service
}

// NewGameHandlers creates the mini-game handlers
func NewGameHandlers(svc minigame.Service) *GameHandlers {
	return &GameHandlers{svc: svc}
}

// HandleStatus reports the caller's eligibility for a game today
// @Summary Game eligibility
// @Tags games
// @Security BearerAuth
// @Produce json
// @Param game path string true "plinko, slot, safe, roulette or tower"
// @Success 200 {object} minigame.Eligibility
// @Failure 400 {object} ErrorResponse "Unknown game"
// @Router /api/v1/games/{game}/status [get]
func (h *GameHandlers) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		game, err := domain.ParseGame(chi.URLParam(r, "game"))
		if err != nil {
			respondServiceError(w, r, "game_status", err)
			return
		}

		elig, err := h.svc.Status(r.Context(), userID, game)
		if err != nil {
			respondServiceError(w, r, "game_status", err)
			return
		}
		respondJSON(w, http.StatusOK, elig)
	}
}

// HandlePlay consumes an attempt and resolves the game
// @Summary Play a mini-game
// @Tags games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param game path string true "plinko, slot, safe, roulette or tower"
// @Param request body PlayRequest false "Safe guess"
// @Success 200 {object} minigame.PlayResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Subscription required"
// @Failure 429 {object} ErrorResponse "No attempts left"
// @Router /api/v1/games/{game}/play [post]
func (h *GameHandlers) HandlePlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		game, err := domain.ParseGame(chi.URLParam(r, "game"))
		if err != nil {
			respondServiceError(w, r, "play", err)
			return
		}

		var req PlayRequest
		if hasBody(r) {
			if err := DecodeAndValidateRequest(r, w, &req, "Play"); err != nil {
				return
			}
		}

		res, err := h.svc.Play(r.Context(), userID, game, minigame.PlayInput{Guess: req.Guess})
		if err != nil {
			respondServiceError(w, r, "play", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgGamePlayed, "game", game, "outcome", res.Outcome.Kind)
		respondJSON(w, http.StatusOK, res)
	}
}

// hasBody reports whether the request carries a non-empty body. Bodies of
// unknown length are peeked and restored.
func hasBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return false
	}
	if r.ContentLength > 0 {
		return true
	}
	buf := make([]byte, 1)
	n, err := r.Body.Read(buf)
	if n == 0 {
		return err != nil && !errors.Is(err, io.EOF)
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(buf[:n]), r.Body))
	return true
}
