package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"anichart/internal/domain"
	"anichart/internal/images"
	"anichart/internal/repository"
)

// ErrMissingFields se devuelve cuando faltan los campos obligatorios de
// creación; el handler lo traduce a 400.
var ErrMissingFields = errors.New("name and anime are required")

// CharacterService orquesta el catálogo de personajes: validación,
// persistencia y el acoplamiento entre documento y retrato.
type CharacterService struct {
	logger *zap.Logger
	repo   repository.CharacterRepository
	images images.Store
	cache  *StatsCache
}

func NewCharacterService(logger *zap.Logger, repo repository.CharacterRepository, imgs images.Store, cache *StatsCache) *CharacterService {
	return &CharacterService{logger: logger, repo: repo, images: imgs, cache: cache}
}

// CreateCharacterInput son los campos del form multipart de creación.
// Solo Name y Anime se validan; el resto pasa tal cual al documento.
type CreateCharacterInput struct {
	Name       string
	Anime      string
	AnimeGenre string
	MBTI       string
	Enneagram  string
	Gender     string
}

func (s *CharacterService) ListAnimes(ctx context.Context) ([]string, error) {
	return s.repo.DistinctAnimes(ctx)
}

func (s *CharacterService) ListCharacters(ctx context.Context, filter domain.CharacterFilter) ([]string, error) {
	return s.repo.ListNames(ctx, filter)
}

func (s *CharacterService) Get(ctx context.Context, anime, name string) (*domain.Character, error) {
	return s.repo.FindByKey(ctx, anime, name)
}

func (s *CharacterService) Search(ctx context.Context, filter domain.SearchFilter) ([]string, error) {
	return s.repo.SearchNames(ctx, filter)
}

func (s *CharacterService) Random(ctx context.Context) (*domain.Character, error) {
	return s.repo.SampleOne(ctx)
}

// Create guarda primero el retrato y luego inserta el documento. Si el
// insert falla, el archivo queda huérfano en disco y solo se registra:
// no hay transacción que cubra ambos pasos.
func (s *CharacterService) Create(ctx context.Context, input CreateCharacterInput, file io.Reader, filename string) (id, imagePath string, err error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Anime = strings.TrimSpace(input.Anime)
	if input.Name == "" || input.Anime == "" || file == nil {
		return "", "", ErrMissingFields
	}

	ext := images.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	imagePath, err = s.images.Save(input.Anime, input.Name, ext, file)
	if err != nil {
		return "", "", err
	}

	character := domain.Character{
		AnimeName:     input.Anime,
		AnimeGenre:    input.AnimeGenre,
		CharacterName: input.Name,
		MBTIType:      input.MBTI,
		EnneagramType: input.Enneagram,
		Gender:        input.Gender,
		ImageExt:      ext,
	}
	id, err = s.repo.Insert(ctx, character)
	if err != nil {
		s.logger.Error("character insert failed, portrait left on disk",
			zap.String("image_path", imagePath), zap.Error(err))
		return "", "", err
	}

	s.cache.InvalidateAll(ctx)
	return id, imagePath, nil
}

// Update mezcla el patch en el documento que coincida con la clave
// natural y devuelve cuántos documentos quedaron modificados (0 o 1).
func (s *CharacterService) Update(ctx context.Context, anime, name string, patch map[string]any) (int64, error) {
	modified, err := s.repo.UpdateByKey(ctx, anime, name, patch)
	if err != nil {
		return 0, err
	}
	if modified > 0 {
		s.cache.InvalidateAll(ctx)
	}
	return modified, nil
}

// Delete elimina solo el documento; el retrato queda en disco.
func (s *CharacterService) Delete(ctx context.Context, anime, name string) (int64, error) {
	deleted, err := s.repo.DeleteByKey(ctx, anime, name)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.cache.InvalidateAll(ctx)
	}
	return deleted, nil
}

// ImagePath resuelve la ruta del retrato de un personaje buscado solo
// por nombre. La extensión registrada manda; los documentos viejos sin
// ella caen en ".jpg".
func (s *CharacterService) ImagePath(ctx context.Context, name string) (string, error) {
	character, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	return s.images.Resolve(character.AnimeName, character.CharacterName, character.ImageExt)
}
