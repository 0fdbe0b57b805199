package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"anichart/internal/domain"
)

type mockCharacterRepo struct {
	insertID      string
	insertErr     error
	lastInserted  domain.Character
	insertCalled  bool
	updateCount   int64
	updateErr     error
	lastPatch     map[string]any
	deleteCount   int64
	deleteErr     error
	findByNameRes *domain.Character
	findByNameErr error
	sampleRes     *domain.Character
	sampleErr     error
	names         []string
	animes        []string
}

func (m *mockCharacterRepo) Insert(_ context.Context, character domain.Character) (string, error) {
	m.insertCalled = true
	if m.insertErr != nil {
		return "", m.insertErr
	}
	m.lastInserted = character
	return m.insertID, nil
}

func (m *mockCharacterRepo) ListNames(_ context.Context, _ domain.CharacterFilter) ([]string, error) {
	return m.names, nil
}

func (m *mockCharacterRepo) SearchNames(_ context.Context, _ domain.SearchFilter) ([]string, error) {
	return m.names, nil
}

func (m *mockCharacterRepo) FindByKey(_ context.Context, _, _ string) (*domain.Character, error) {
	return m.findByNameRes, m.findByNameErr
}

func (m *mockCharacterRepo) FindByName(_ context.Context, _ string) (*domain.Character, error) {
	if m.findByNameErr != nil {
		return nil, m.findByNameErr
	}
	return m.findByNameRes, nil
}

func (m *mockCharacterRepo) UpdateByKey(_ context.Context, _, _ string, patch map[string]any) (int64, error) {
	m.lastPatch = patch
	return m.updateCount, m.updateErr
}

func (m *mockCharacterRepo) DeleteByKey(_ context.Context, _, _ string) (int64, error) {
	return m.deleteCount, m.deleteErr
}

func (m *mockCharacterRepo) DistinctAnimes(_ context.Context) ([]string, error) {
	return m.animes, nil
}

func (m *mockCharacterRepo) SampleOne(_ context.Context) (*domain.Character, error) {
	if m.sampleErr != nil {
		return nil, m.sampleErr
	}
	return m.sampleRes, nil
}

func (m *mockCharacterRepo) CountByMBTI(_ context.Context) ([]domain.MBTICount, error) {
	return nil, nil
}

func (m *mockCharacterRepo) CountByEnneagram(_ context.Context) ([]domain.EnneagramCount, error) {
	return nil, nil
}

func (m *mockCharacterRepo) CountByAnime(_ context.Context) ([]domain.AnimeCount, error) {
	return nil, nil
}

func (m *mockCharacterRepo) GenderBuckets(_ context.Context, _ string) (map[string]int64, error) {
	return nil, nil
}

func (m *mockCharacterRepo) GenderByAnime(_ context.Context) ([]domain.AnimeGenderCount, error) {
	return nil, nil
}

type mockImageStore struct {
	savedPath   string
	saveErr     error
	saveCalled  bool
	lastAnime   string
	lastName    string
	lastExt     string
	resolvePath string
	resolveErr  error
}

func (m *mockImageStore) Save(anime, character, ext string, _ io.Reader) (string, error) {
	m.saveCalled = true
	m.lastAnime = anime
	m.lastName = character
	m.lastExt = ext
	if m.saveErr != nil {
		return "", m.saveErr
	}
	return m.savedPath, nil
}

func (m *mockImageStore) Resolve(anime, character, ext string) (string, error) {
	m.lastAnime = anime
	m.lastName = character
	m.lastExt = ext
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	return m.resolvePath, nil
}

func TestCharacterServiceCreateRequiresNameAndAnime(t *testing.T) {
	repo := &mockCharacterRepo{}
	imgs := &mockImageStore{}
	svc := NewCharacterService(zap.NewNop(), repo, imgs, nil)

	_, _, err := svc.Create(context.Background(), CreateCharacterInput{Anime: "X"}, strings.NewReader("img"), "a.jpg")
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for missing name, got %v", err)
	}
	_, _, err = svc.Create(context.Background(), CreateCharacterInput{Name: "  "}, strings.NewReader("img"), "a.jpg")
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for blank fields, got %v", err)
	}
	_, _, err = svc.Create(context.Background(), CreateCharacterInput{Name: "Test", Anime: "X"}, nil, "a.jpg")
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for missing file, got %v", err)
	}
	if imgs.saveCalled || repo.insertCalled {
		t.Fatalf("no side effects expected on validation failure")
	}
}

func TestCharacterServiceCreateSavesFileThenInserts(t *testing.T) {
	repo := &mockCharacterRepo{insertID: "abc123"}
	imgs := &mockImageStore{savedPath: "images/X/Test.png"}
	svc := NewCharacterService(zap.NewNop(), repo, imgs, nil)

	input := CreateCharacterInput{
		Name:       " Test ",
		Anime:      " X ",
		AnimeGenre: "shounen",
		MBTI:       "INTJ",
		Enneagram:  "5w6",
		Gender:     "m",
	}
	id, imagePath, err := svc.Create(context.Background(), input, strings.NewReader("img"), "upload.PNG")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != "abc123" || imagePath != "images/X/Test.png" {
		t.Fatalf("unexpected result id=%q path=%q", id, imagePath)
	}
	if imgs.lastAnime != "X" || imgs.lastName != "Test" || imgs.lastExt != ".png" {
		t.Fatalf("unexpected save args anime=%q name=%q ext=%q", imgs.lastAnime, imgs.lastName, imgs.lastExt)
	}
	if repo.lastInserted.AnimeName != "X" || repo.lastInserted.CharacterName != "Test" {
		t.Fatalf("expected trimmed fields in document, got %+v", repo.lastInserted)
	}
	if repo.lastInserted.ImageExt != ".png" {
		t.Fatalf("expected extension recorded on document, got %q", repo.lastInserted.ImageExt)
	}
	if repo.lastInserted.MBTIType != "INTJ" || repo.lastInserted.Gender != "m" {
		t.Fatalf("expected passthrough fields, got %+v", repo.lastInserted)
	}
}

func TestCharacterServiceCreateDefaultsExtension(t *testing.T) {
	repo := &mockCharacterRepo{}
	imgs := &mockImageStore{}
	svc := NewCharacterService(zap.NewNop(), repo, imgs, nil)

	_, _, err := svc.Create(context.Background(), CreateCharacterInput{Name: "Test", Anime: "X"}, strings.NewReader("img"), "noext")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if imgs.lastExt != ".jpg" {
		t.Fatalf("expected .jpg default, got %q", imgs.lastExt)
	}
}

func TestCharacterServiceCreateInsertFailureLeavesFile(t *testing.T) {
	repo := &mockCharacterRepo{insertErr: errors.New("boom")}
	imgs := &mockImageStore{savedPath: "images/X/Test.jpg"}
	svc := NewCharacterService(zap.NewNop(), repo, imgs, nil)

	_, _, err := svc.Create(context.Background(), CreateCharacterInput{Name: "Test", Anime: "X"}, strings.NewReader("img"), "a.jpg")
	if err == nil {
		t.Fatalf("expected insert error")
	}
	// El archivo ya se escribió; no hay rollback.
	if !imgs.saveCalled {
		t.Fatalf("expected file saved before insert")
	}
}

func TestCharacterServiceCreateSaveFailureSkipsInsert(t *testing.T) {
	repo := &mockCharacterRepo{}
	imgs := &mockImageStore{saveErr: errors.New("disk full")}
	svc := NewCharacterService(zap.NewNop(), repo, imgs, nil)

	_, _, err := svc.Create(context.Background(), CreateCharacterInput{Name: "Test", Anime: "X"}, strings.NewReader("img"), "a.jpg")
	if err == nil {
		t.Fatalf("expected save error")
	}
	if repo.insertCalled {
		t.Fatalf("insert must not run after a failed file save")
	}
}

func TestCharacterServiceUpdateReportsModifiedCount(t *testing.T) {
	repo := &mockCharacterRepo{updateCount: 1}
	svc := NewCharacterService(zap.NewNop(), repo, &mockImageStore{}, nil)

	patch := map[string]any{"character_gender": "f"}
	modified, err := svc.Update(context.Background(), "X", "Test", patch)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if modified != 1 {
		t.Fatalf("expected 1 modified, got %d", modified)
	}
	if repo.lastPatch["character_gender"] != "f" {
		t.Fatalf("expected patch forwarded, got %v", repo.lastPatch)
	}
}

func TestCharacterServiceDeleteReportsZeroForMissing(t *testing.T) {
	repo := &mockCharacterRepo{deleteCount: 0}
	svc := NewCharacterService(zap.NewNop(), repo, &mockImageStore{}, nil)

	deleted, err := svc.Delete(context.Background(), "X", "Nobody")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected 0 deleted, got %d", deleted)
	}
}

func TestCharacterServiceImagePathUsesRecordedExtension(t *testing.T) {
	repo := &mockCharacterRepo{
		findByNameRes: &domain.Character{AnimeName: "X", CharacterName: "Test", ImageExt: ".png"},
	}
	imgs := &mockImageStore{resolvePath: "images/X/Test.png"}
	svc := NewCharacterService(zap.NewNop(), repo, imgs, nil)

	path, err := svc.ImagePath(context.Background(), "Test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path != "images/X/Test.png" {
		t.Fatalf("unexpected path %q", path)
	}
	if imgs.lastExt != ".png" {
		t.Fatalf("expected recorded extension used, got %q", imgs.lastExt)
	}
}

func TestCharacterServiceImagePathMissingCharacter(t *testing.T) {
	repo := &mockCharacterRepo{findByNameErr: mongo.ErrNoDocuments}
	svc := NewCharacterService(zap.NewNop(), repo, &mockImageStore{}, nil)

	_, err := svc.ImagePath(context.Background(), "Nobody")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestCharacterServiceRandomPropagatesEmpty(t *testing.T) {
	repo := &mockCharacterRepo{sampleErr: mongo.ErrNoDocuments}
	svc := NewCharacterService(zap.NewNop(), repo, &mockImageStore{}, nil)

	_, err := svc.Random(context.Background())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}
