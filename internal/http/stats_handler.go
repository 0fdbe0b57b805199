package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"anichart/internal/service"
)

// StatsHandler mantiene dependencias para los endpoints de gráficos.
type StatsHandler struct {
	logger *zap.Logger
	stats  *service.StatsService
}

// NewStatsHandler crea una instancia de StatsHandler.
func NewStatsHandler(logger *zap.Logger, stats *service.StatsService) *StatsHandler {
	return &StatsHandler{logger: logger, stats: stats}
}

// MBTIDistribution maneja GET /api/graph/mbti.
func (h *StatsHandler) MBTIDistribution(c *gin.Context) {
	rows, err := h.stats.MBTIDistribution(c.Request.Context())
	if err != nil {
		h.logger.Error("mbti distribution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// EnneagramDistribution maneja GET /api/graph/enneagram.
func (h *StatsHandler) EnneagramDistribution(c *gin.Context) {
	rows, err := h.stats.EnneagramDistribution(c.Request.Context())
	if err != nil {
		h.logger.Error("enneagram distribution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// AnimeDistribution maneja GET /api/graph/animes.
func (h *StatsHandler) AnimeDistribution(c *gin.Context) {
	rows, err := h.stats.AnimeDistribution(c.Request.Context())
	if err != nil {
		h.logger.Error("anime distribution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GenderByAnime maneja GET /api/graph/gender.
func (h *StatsHandler) GenderByAnime(c *gin.Context) {
	rows, err := h.stats.GenderByAnime(c.Request.Context())
	if err != nil {
		h.logger.Error("gender by anime failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// AnimeGenderSummary maneja GET /api/animes/:anime/gender.
func (h *StatsHandler) AnimeGenderSummary(c *gin.Context) {
	summary, err := h.stats.AnimeGenderSummary(c.Request.Context(), c.Param("anime"))
	if err != nil {
		h.logger.Error("anime gender summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, summary)
}
