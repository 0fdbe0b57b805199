package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Character es el documento que describe un personaje de anime.
// El par (anime_name, character_name) funciona como clave natural para
// las operaciones de detalle, aunque la colección no fuerza unicidad.
type Character struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AnimeName     string             `bson:"anime_name" json:"anime_name"`
	AnimeGenre    string             `bson:"anime_genre,omitempty" json:"anime_genre,omitempty"`
	CharacterName string             `bson:"character_name" json:"character_name"`
	MBTIType      string             `bson:"character_mbti_type,omitempty" json:"character_mbti_type,omitempty"`
	EnneagramType string             `bson:"character_enneagram_type,omitempty" json:"character_enneagram_type,omitempty"`
	Gender        string             `bson:"character_gender,omitempty" json:"character_gender,omitempty"`
	IsMain        bool               `bson:"is_main_character,omitempty" json:"is_main_character,omitempty"`
	ImageExt      string             `bson:"image_ext,omitempty" json:"image_ext,omitempty"`
}

// Valores de character_gender que entienden las agregaciones; cualquier
// otro valor se conserva en el documento pero no se normaliza.
const (
	GenderMale   = "m"
	GenderFemale = "f"
)

// CharacterFilter describe los refinamientos opcionales del listado de
// personajes de un anime. Un campo vacío no impone restricción.
type CharacterFilter struct {
	Anime     string
	Gender    string
	MBTI      string
	Enneagram string
	OnlyMain  bool
}

// SearchFilter describe la búsqueda libre de personajes.
// Name se compara como substring sin distinguir mayúsculas.
type SearchFilter struct {
	Anime string
	Name  string
}
