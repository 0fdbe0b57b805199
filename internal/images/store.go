package images

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indica que el retrato esperado no existe en disco.
var ErrNotFound = errors.New("image not found")

// Store persiste y resuelve retratos bajo la convención
// <root>/<anime>/<personaje>.<ext>, un directorio por anime.
type Store interface {
	Save(anime, character, ext string, src io.Reader) (string, error)
	Resolve(anime, character, ext string) (string, error)
}

type DirStore struct {
	root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// Save escribe el retrato descartando el nombre original del upload: el
// archivo queda como <character>.<ext> dentro del directorio del anime,
// que se crea en el primer uso.
func (s *DirStore) Save(anime, character, ext string, src io.Reader) (string, error) {
	dir, err := s.animeDir(anime)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name, err := fileName(character, ext)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

// Resolve devuelve la ruta del retrato si existe. Un ext vacío cae en
// ".jpg", que era la única extensión que el sistema original sabía leer.
func (s *DirStore) Resolve(anime, character, ext string) (string, error) {
	if ext == "" {
		ext = ".jpg"
	}
	dir, err := s.animeDir(anime)
	if err != nil {
		return "", err
	}
	name, err := fileName(character, ext)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return path, nil
}

func (s *DirStore) animeDir(anime string) (string, error) {
	if !safeSegment(anime) {
		return "", errors.New("invalid anime name for image path")
	}
	return filepath.Join(s.root, anime), nil
}

func fileName(character, ext string) (string, error) {
	if !safeSegment(character) || !safeSegment(strings.TrimPrefix(ext, ".")) {
		return "", errors.New("invalid character name for image path")
	}
	return character + ext, nil
}

// safeSegment rechaza segmentos que escaparían del directorio raíz.
func safeSegment(segment string) bool {
	if segment == "" || segment == "." || segment == ".." {
		return false
	}
	return !strings.ContainsAny(segment, `/\`)
}

// Ext extrae la extensión del nombre original del upload, en minúsculas.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
