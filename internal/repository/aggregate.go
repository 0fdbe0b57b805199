package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"anichart/internal/domain"
)

// Las agregaciones corren dentro del store; la aplicación nunca carga la
// colección completa en memoria para contar.

// axisUnknownBucket agrupa los documentos sin valor en el eje pedido.
const axisUnknownBucket = "unknown"

func axisPipeline(field, outKey string) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, axisUnknownBucket}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: outKey, Value: "$_id"},
			{Key: "count", Value: 1},
		}}},
	}
}

func (r *MongoCharacterRepository) CountByMBTI(ctx context.Context) ([]domain.MBTICount, error) {
	cursor, err := r.coll.Aggregate(ctx, axisPipeline("character_mbti_type", "mbti"))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []domain.MBTICount{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MongoCharacterRepository) CountByEnneagram(ctx context.Context) ([]domain.EnneagramCount, error) {
	cursor, err := r.coll.Aggregate(ctx, axisPipeline("character_enneagram_type", "enneagram"))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []domain.EnneagramCount{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MongoCharacterRepository) CountByAnime(ctx context.Context) ([]domain.AnimeCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$anime_name"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "anime", Value: "$_id"},
			{Key: "count", Value: 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []domain.AnimeCount{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MongoCharacterRepository) GenderBuckets(ctx context.Context, anime string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "anime_name", Value: anime}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$character_gender", ""}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	buckets := map[string]int64{}
	for cursor.Next(ctx) {
		var row struct {
			Gender string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		buckets[row.Gender] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (r *MongoCharacterRepository) GenderByAnime(ctx context.Context) ([]domain.AnimeGenderCount, error) {
	// Conteo condicional de ambos géneros en una sola pasada.
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$anime_name"},
			{Key: "male_count", Value: bson.D{{Key: "$sum", Value: genderCond(domain.GenderMale)}}},
			{Key: "female_count", Value: bson.D{{Key: "$sum", Value: genderCond(domain.GenderFemale)}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "anime_name", Value: "$_id"},
			{Key: "male_count", Value: 1},
			{Key: "female_count", Value: 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []domain.AnimeGenderCount{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func genderCond(gender string) bson.D {
	return bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$character_gender", gender}}},
		1,
		0,
	}}}
}
