package ml

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// Fixed scores of the offline similarity answer
const (
	fallbackHighSimilarity = 0.95
	fallbackMidSimilarity  = 0.87
	fallbackLowSimilarity  = 0.79
)

var fallbackRecommendationPool = []uint{5, 12, 18, 33}

// RecommendationLimit is how many recommendations are shown and stored
const RecommendationLimit = 4

func fallbackSimilarProducts() []SimilarProduct {
	return []SimilarProduct{
		{ProductID: uint(1 + rand.IntN(20)), Similarity: fallbackHighSimilarity},
		{ProductID: uint(21 + rand.IntN(20)), Similarity: fallbackMidSimilarity},
		{ProductID: uint(41 + rand.IntN(10)), Similarity: fallbackLowSimilarity},
	}
}

// fallbackRecommendations returns four ids, one of them always OrcaDollID
func fallbackRecommendations() []uint {
	pool := append([]uint(nil), fallbackRecommendationPool...)
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	ids := pool[:RecommendationLimit-1]
	return slices.Insert(ids, rand.IntN(len(ids)+1), OrcaDollID)
}

func fallbackAllow(content string) bool {
	return !strings.Contains(strings.ToLower(content), ForbiddenWord)
}
