package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y las rutas de
// la API bajo /api.
func NewRouter(
	logger *zap.Logger,
	characterH *CharacterHandler,
	statsH *StatsHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: request id, logging y recovery.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())

	api := r.Group("/api")

	api.GET("/animes", characterH.ListAnimes)
	api.GET("/animes/:anime/characters", characterH.ListCharacters)
	api.GET("/animes/:anime/characters/:name", characterH.GetCharacter)
	api.PUT("/animes/:anime/characters/:name", characterH.Update)
	api.DELETE("/animes/:anime/characters/:name", characterH.Delete)
	api.GET("/animes/:anime/gender", statsH.AnimeGenderSummary)

	api.GET("/graph/mbti", statsH.MBTIDistribution)
	api.GET("/graph/enneagram", statsH.EnneagramDistribution)
	api.GET("/graph/animes", statsH.AnimeDistribution)
	api.GET("/graph/gender", statsH.GenderByAnime)

	api.GET("/characters/search", characterH.Search)
	api.GET("/characters/random", characterH.Random)
	api.GET("/characters/:name/image", characterH.Image)
	api.POST("/characters", characterH.Create)

	return r
}

// requestIDMiddleware asigna un id a cada request y lo expone en la
// respuesta para correlacionar logs.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
