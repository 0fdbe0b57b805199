package service

import (
	"context"

	"anichart/internal/domain"
	"anichart/internal/repository"
)

// StatsService expone el conjunto cerrado de estadísticas para los
// gráficos, con cache opcional por delante del store.
type StatsService struct {
	repo  repository.StatsRepository
	cache *StatsCache
}

func NewStatsService(repo repository.StatsRepository, cache *StatsCache) *StatsService {
	return &StatsService{repo: repo, cache: cache}
}

func (s *StatsService) MBTIDistribution(ctx context.Context) ([]domain.MBTICount, error) {
	var rows []domain.MBTICount
	if s.cache.Get(ctx, "mbti", &rows) {
		return rows, nil
	}
	rows, err := s.repo.CountByMBTI(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, "mbti", rows)
	return rows, nil
}

func (s *StatsService) EnneagramDistribution(ctx context.Context) ([]domain.EnneagramCount, error) {
	var rows []domain.EnneagramCount
	if s.cache.Get(ctx, "enneagram", &rows) {
		return rows, nil
	}
	rows, err := s.repo.CountByEnneagram(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, "enneagram", rows)
	return rows, nil
}

func (s *StatsService) AnimeDistribution(ctx context.Context) ([]domain.AnimeCount, error) {
	var rows []domain.AnimeCount
	if s.cache.Get(ctx, "animes", &rows) {
		return rows, nil
	}
	rows, err := s.repo.CountByAnime(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, "animes", rows)
	return rows, nil
}

func (s *StatsService) GenderByAnime(ctx context.Context) ([]domain.AnimeGenderCount, error) {
	var rows []domain.AnimeGenderCount
	if s.cache.Get(ctx, "gender_by_anime", &rows) {
		return rows, nil
	}
	rows, err := s.repo.GenderByAnime(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, "gender_by_anime", rows)
	return rows, nil
}

// AnimeGenderSummary reduce los buckets de género de un anime a las dos
// claves fijas del resumen; cualquier valor distinto de "m"/"f" se
// descarta en silencio.
func (s *StatsService) AnimeGenderSummary(ctx context.Context, anime string) (domain.GenderSummary, error) {
	var summary domain.GenderSummary
	if s.cache.Get(ctx, "gender:"+anime, &summary) {
		return summary, nil
	}
	buckets, err := s.repo.GenderBuckets(ctx, anime)
	if err != nil {
		return domain.GenderSummary{}, err
	}
	summary = domain.GenderSummary{
		Male:   buckets[domain.GenderMale],
		Female: buckets[domain.GenderFemale],
	}
	s.cache.Set(ctx, "gender:"+anime, summary)
	return summary, nil
}
