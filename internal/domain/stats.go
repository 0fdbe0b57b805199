package domain

// Filas que producen las agregaciones, con la forma exacta que consumen
// los gráficos del frontend.

// MBTICount es un bucket de la distribución por tipo MBTI.
type MBTICount struct {
	MBTI  string `bson:"mbti" json:"mbti"`
	Count int64  `bson:"count" json:"count"`
}

// EnneagramCount es un bucket de la distribución por eneatipo.
type EnneagramCount struct {
	Enneagram string `bson:"enneagram" json:"enneagram"`
	Count     int64  `bson:"count" json:"count"`
}

// AnimeCount es la cantidad de personajes registrados de un anime.
type AnimeCount struct {
	Anime string `bson:"anime" json:"anime"`
	Count int64  `bson:"count" json:"count"`
}

// GenderSummary resume los géneros de un anime en dos claves fijas.
// Los documentos con género distinto de "m"/"f" quedan fuera de ambas.
type GenderSummary struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

// AnimeGenderCount es el conteo condicional de géneros de un anime,
// calculado en una sola pasada de agregación.
type AnimeGenderCount struct {
	AnimeName   string `bson:"anime_name" json:"anime_name"`
	MaleCount   int64  `bson:"male_count" json:"male_count"`
	FemaleCount int64  `bson:"female_count" json:"female_count"`
}
