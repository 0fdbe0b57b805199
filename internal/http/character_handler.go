package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"anichart/internal/domain"
	"anichart/internal/images"
	"anichart/internal/service"
)

// internalError es el cuerpo genérico de todo fallo del store; la API
// no distingue fallas de conectividad de fallas de consulta.
var internalError = gin.H{"error": "Internal Server Error"}

// CharacterHandler mantiene dependencias para los endpoints del
// catálogo de personajes.
type CharacterHandler struct {
	logger     *zap.Logger
	characters *service.CharacterService
}

// NewCharacterHandler crea una instancia de CharacterHandler.
func NewCharacterHandler(logger *zap.Logger, characters *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{logger: logger, characters: characters}
}

// ListAnimes maneja GET /api/animes.
func (h *CharacterHandler) ListAnimes(c *gin.Context) {
	animes, err := h.characters.ListAnimes(c.Request.Context())
	if err != nil {
		h.logger.Error("list animes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, animes)
}

// ListCharacters maneja GET /api/animes/:anime/characters. Los query
// params ausentes no imponen restricción; los desconocidos se ignoran.
func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	filter := domain.CharacterFilter{
		Anime:     c.Param("anime"),
		Gender:    c.Query("gender"),
		MBTI:      c.Query("mbti"),
		Enneagram: c.Query("enneagram"),
		OnlyMain:  c.Query("isMainCharacter") == "true",
	}
	names, err := h.characters.ListCharacters(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list characters failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, names)
}

// GetCharacter maneja GET /api/animes/:anime/characters/:name y
// devuelve el documento completo, o null si la clave no existe.
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	character, err := h.characters.Get(c.Request.Context(), c.Param("anime"), c.Param("name"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusOK, nil)
			return
		}
		h.logger.Error("get character failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, character)
}

// Search maneja GET /api/characters/search.
func (h *CharacterHandler) Search(c *gin.Context) {
	filter := domain.SearchFilter{
		Anime: c.Query("anime"),
		Name:  c.Query("name"),
	}
	names, err := h.characters.Search(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("search characters failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, names)
}

// Random maneja GET /api/characters/random.
func (h *CharacterHandler) Random(c *gin.Context) {
	character, err := h.characters.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no characters found"})
			return
		}
		h.logger.Error("random character failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.JSON(http.StatusOK, character)
}

// Image maneja GET /api/characters/:name/image y responde el archivo
// crudo del retrato.
func (h *CharacterHandler) Image(c *gin.Context) {
	path, err := h.characters.ImagePath(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, images.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		h.logger.Error("resolve image failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	c.File(path)
}

// Create maneja POST /api/characters (form multipart con el retrato).
func (h *CharacterHandler) Create(c *gin.Context) {
	input := service.CreateCharacterInput{
		Name:       c.PostForm("name"),
		Anime:      c.PostForm("anime"),
		AnimeGenre: c.PostForm("animeGenre"),
		MBTI:       c.PostForm("mbti"),
		Enneagram:  c.PostForm("enneagram"),
		Gender:     c.PostForm("gender"),
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	defer file.Close()

	id, imagePath, err := h.characters.Create(c.Request.Context(), input, file, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("create character failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "character created",
		"id":        id,
		"imagePath": imagePath,
	})
}

// Update maneja PUT /api/animes/:anime/characters/:name con un body
// JSON arbitrario que se mezcla campo a campo en el documento.
func (h *CharacterHandler) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	modified, err := h.characters.Update(c.Request.Context(), c.Param("anime"), c.Param("name"), patch)
	if err != nil {
		h.logger.Error("update character failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	if modified == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found or unchanged"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "character updated"})
}

// Delete maneja DELETE /api/animes/:anime/characters/:name. El retrato
// no se borra del disco.
func (h *CharacterHandler) Delete(c *gin.Context) {
	deleted, err := h.characters.Delete(c.Request.Context(), c.Param("anime"), c.Param("name"))
	if err != nil {
		h.logger.Error("delete character failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "character deleted"})
}
