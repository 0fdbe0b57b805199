package repository

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"anichart/internal/domain"
)

// Los filtros se construyen siempre desde structs tipados: cada campo
// presente aporta exactamente una restricción y nunca se interpreta un
// mapa crudo que venga del request.

func buildCharacterFilter(f domain.CharacterFilter) bson.M {
	filter := bson.M{"anime_name": f.Anime}
	if f.Gender != "" {
		filter["character_gender"] = f.Gender
	}
	if f.MBTI != "" {
		filter["character_mbti_type"] = f.MBTI
	}
	if f.Enneagram != "" {
		filter["character_enneagram_type"] = f.Enneagram
	}
	if f.OnlyMain {
		filter["is_main_character"] = true
	}
	return filter
}

func buildSearchFilter(f domain.SearchFilter) bson.M {
	filter := bson.M{}
	if f.Anime != "" {
		filter["anime_name"] = f.Anime
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		// Substring sin anclar, case-insensitive. QuoteMeta evita que la
		// entrada del usuario se interprete como regex.
		filter["character_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
	}
	return filter
}

func naturalKeyFilter(anime, name string) bson.M {
	return bson.M{"anime_name": anime, "character_name": name}
}
