package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"anichart/internal/domain"
)

type CharacterRepository interface {
	Insert(ctx context.Context, character domain.Character) (string, error)
	ListNames(ctx context.Context, filter domain.CharacterFilter) ([]string, error)
	SearchNames(ctx context.Context, filter domain.SearchFilter) ([]string, error)
	FindByKey(ctx context.Context, anime, name string) (*domain.Character, error)
	FindByName(ctx context.Context, name string) (*domain.Character, error)
	UpdateByKey(ctx context.Context, anime, name string, patch map[string]any) (int64, error)
	DeleteByKey(ctx context.Context, anime, name string) (int64, error)
	DistinctAnimes(ctx context.Context) ([]string, error)
	SampleOne(ctx context.Context) (*domain.Character, error)

	StatsRepository
}

// StatsRepository agrupa las consultas de agregación; es el conjunto
// cerrado de variantes que expone la API de gráficos.
type StatsRepository interface {
	CountByMBTI(ctx context.Context) ([]domain.MBTICount, error)
	CountByEnneagram(ctx context.Context) ([]domain.EnneagramCount, error)
	CountByAnime(ctx context.Context) ([]domain.AnimeCount, error)
	GenderBuckets(ctx context.Context, anime string) (map[string]int64, error)
	GenderByAnime(ctx context.Context) ([]domain.AnimeGenderCount, error)
}

type MongoCharacterRepository struct {
	coll *mongo.Collection
}

func NewMongoCharacterRepository(coll *mongo.Collection) *MongoCharacterRepository {
	return &MongoCharacterRepository{coll: coll}
}

func (r *MongoCharacterRepository) Insert(ctx context.Context, character domain.Character) (string, error) {
	// No se fuerza unicidad sobre (anime_name, character_name); un insert
	// duplicado es legal y vuelve ambiguas las búsquedas posteriores.
	res, err := r.coll.InsertOne(ctx, character)
	if err != nil {
		return "", err
	}
	return insertedIDHex(res.InsertedID)
}

// insertedIDHex convierte el id que asignó el store; un tipo inesperado
// es un error explícito, nunca un id vacío sobre un insert exitoso.
func insertedIDHex(id any) (string, error) {
	oid, ok := id.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", id)
	}
	return oid.Hex(), nil
}

func (r *MongoCharacterRepository) ListNames(ctx context.Context, filter domain.CharacterFilter) ([]string, error) {
	return r.findNames(ctx, buildCharacterFilter(filter))
}

func (r *MongoCharacterRepository) SearchNames(ctx context.Context, filter domain.SearchFilter) ([]string, error) {
	return r.findNames(ctx, buildSearchFilter(filter))
}

func (r *MongoCharacterRepository) findNames(ctx context.Context, filter bson.M) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"character_name": 1, "_id": 0})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	names := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			CharacterName string `bson:"character_name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		names = append(names, doc.CharacterName)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *MongoCharacterRepository) FindByKey(ctx context.Context, anime, name string) (*domain.Character, error) {
	var c domain.Character
	if err := r.coll.FindOne(ctx, naturalKeyFilter(anime, name)).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoCharacterRepository) FindByName(ctx context.Context, name string) (*domain.Character, error) {
	var c domain.Character
	if err := r.coll.FindOne(ctx, bson.M{"character_name": name}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoCharacterRepository) UpdateByKey(ctx context.Context, anime, name string, patch map[string]any) (int64, error) {
	delete(patch, "_id")
	if len(patch) == 0 {
		return 0, nil
	}
	res, err := r.coll.UpdateOne(ctx, naturalKeyFilter(anime, name), bson.M{"$set": patch})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MongoCharacterRepository) DeleteByKey(ctx context.Context, anime, name string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, naturalKeyFilter(anime, name))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoCharacterRepository) DistinctAnimes(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "anime_name", bson.M{})
	if err != nil {
		return nil, err
	}
	animes := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			animes = append(animes, s)
		}
	}
	return animes, nil
}

func (r *MongoCharacterRepository) SampleOne(ctx context.Context) (*domain.Character, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, mongo.ErrNoDocuments
	}
	var c domain.Character
	if err := cursor.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
