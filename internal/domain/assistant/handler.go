// Package assistant exposes the chat and voice-note endpoints backed by
// the platform assistant client.
package assistant

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	platform "github.com/matricare/matricare/internal/platform/assistant"
)

// maxAudioBytes caps a single voice-note upload.
const maxAudioBytes = 10 << 20

type Handler struct {
	client platform.Client
	logger zerolog.Logger
}

func NewHandler(client platform.Client, logger zerolog.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// RegisterRoutes wires chat on the public group (the chat screen is
// reachable before sign-in) and voice analysis on the authenticated one.
func (h *Handler) RegisterRoutes(public, api *echo.Group) {
	public.POST("/assistant/chat", h.Chat)
	api.POST("/assistant/voice", h.Voice)
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) Chat(c echo.Context) error {
	var in struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(in.Message) == "" {
		return c.JSON(http.StatusBadRequest, chatResponse{Reply: "Please type your question about your health."})
	}
	if h.client == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not configured")
	}
	reply, err := h.client.Chat(c.Request().Context(), in.Message)
	if err != nil {
		h.logger.Error().Err(err).Msg("assistant chat failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to analyze your message, please try again")
	}
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

func (h *Handler) Voice(c echo.Context) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "audio file is required")
	}
	if file.Size > maxAudioBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "audio file too large")
	}
	if h.client == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not configured")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read audio file")
	}
	defer src.Close()
	audio, err := io.ReadAll(io.LimitReader(src, maxAudioBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read audio file")
	}
	if len(audio) > maxAudioBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "audio file too large")
	}

	analysis, err := h.client.AnalyzeVoice(c.Request().Context(), audio, file.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error().Err(err).Msg("voice analysis failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to analyze audio")
	}
	return c.JSON(http.StatusOK, analysis)
}
