package reading

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetReading handles POST /api/v1/reading
func (h *Handler) GetReading(req *restful.Request, resp *restful.Response) {
	var readingRequest ReadingRequest

	if err := req.ReadEntity(&readingRequest); err != nil {
		log.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	readingRequest.SetDefaults()
	if err := readingRequest.Validate(); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	log.Info().
		Str("question", readingRequest.Question).
		Int("num_cards", readingRequest.NumCards).
		Str("caller_id", readingRequest.CallerID).
		Msg("Process Reading")

	ctx := req.Request.Context()

	session, err := h.service.GetReading(ctx, readingRequest.Question, readingRequest.NumCards, readingRequest.CallerID)
	if err != nil {
		var validationErr *ValidationError
		var generationErr *GenerationError
		switch {
		case errors.As(err, &validationErr):
			middleware.HandleError(resp, err, http.StatusBadRequest)
		case errors.Is(err, ErrKnowledgeExhausted):
			middleware.HandleError(resp, err, http.StatusInternalServerError)
		case errors.As(err, &generationErr):
			middleware.HandleError(resp, err, http.StatusBadGateway)
		default:
			middleware.HandleError(resp, err, http.StatusInternalServerError)
		}
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, NewReadingResponse(session))
}

// GetCardInfo handles GET /api/v1/card/{card_name}
func (h *Handler) GetCardInfo(req *restful.Request, resp *restful.Response) {
	cardName := req.PathParameter("card_name")

	ctx := req.Request.Context()

	entry, err := h.service.CardInfo(ctx, cardName)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			middleware.HandleError(resp, err, http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("card_name", cardName).Msg("Failed to fetch card info")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, NewCardInfoResponse(entry))
}

// GetStats handles GET /api/v1/guardrails/stats
func (h *Handler) GetStats(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, h.service.Stats())
}

// ResetStats handles POST /api/v1/guardrails/stats/reset
func (h *Handler) ResetStats(req *restful.Request, resp *restful.Response) {
	h.service.ResetStats()
	resp.WriteHeaderAndEntity(http.StatusOK, map[string]string{"status": "reset"})
}

// Health handles GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
