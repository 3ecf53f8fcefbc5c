package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendedIDs(items []RecommendedItem) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestRecommendAnonymousGetsPopularItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	carbonara := createTestMenuItem(t, db, "Carbonara", 15.99, "Main Course")
	tiramisu := createTestMenuItem(t, db, "Tiramisu", 6.99, "Dessert")
	createTestMenuItem(t, db, "Espresso", 2.99, "Beverage")

	buyer := createTestUser(t, db, "buyer")
	createTestOrder(t, db, buyer.ID, []uint{carbonara.ID}, 5)
	createTestOrder(t, db, buyer.ID, []uint{tiramisu.ID}, 2)

	items, label, err := svc.Recommend(testContext(), nil, 2)

	require.NoError(t, err)
	assert.Equal(t, LabelPopular, label)
	require.Len(t, items, 2)
	assert.Equal(t, carbonara.ID, items[0].ID)
	assert.Equal(t, tiramisu.ID, items[1].ID)
	assert.Equal(t, ReasonPopular, items[0].RecommendationReason)
}

func TestRecommendColdStartUserFallsBackToPopular(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	carbonara := createTestMenuItem(t, db, "Carbonara", 15.99, "Main Course")
	buyer := createTestUser(t, db, "buyer")
	createTestOrder(t, db, buyer.ID, []uint{carbonara.ID}, 3)

	newcomer := createTestUser(t, db, "newcomer")
	items, label, err := svc.Recommend(testContext(), &newcomer.ID, 3)

	require.NoError(t, err)
	assert.Equal(t, LabelPopular, label)
	require.NotEmpty(t, items)
	assert.Equal(t, carbonara.ID, items[0].ID)
}

func TestRecommendPersonalizedScoring(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	pizza := createTestMenuItem(t, db, "Margherita Pizza", 13.99, "Main Course")
	carbonara := createTestMenuItem(t, db, "Carbonara", 15.99, "Main Course")
	tiramisu := createTestMenuItem(t, db, "Tiramisu", 6.99, "Dessert")
	espresso := createTestMenuItem(t, db, "Espresso", 2.99, "Beverage")

	// The target bought pizza and carbonara. One neighbor shares both and also
	// bought tiramisu (weight 1.0); another shares only carbonara and also
	// bought espresso (weight 0.5).
	target := createTestUser(t, db, "target")
	createTestOrder(t, db, target.ID, []uint{pizza.ID, carbonara.ID}, 1)

	twin := createTestUser(t, db, "twin")
	createTestOrder(t, db, twin.ID, []uint{pizza.ID, carbonara.ID, tiramisu.ID}, 1)

	acquaintance := createTestUser(t, db, "acquaintance")
	createTestOrder(t, db, acquaintance.ID, []uint{carbonara.ID, espresso.ID}, 1)

	items, label, err := svc.Recommend(testContext(), &target.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, LabelPersonalized, label)
	require.Len(t, items, 2)

	assert.Equal(t, tiramisu.ID, items[0].ID)
	assert.InDelta(t, 1.0, items[0].Score, 1e-9)
	assert.Equal(t, ReasonTaste, items[0].RecommendationReason)

	assert.Equal(t, espresso.ID, items[1].ID)
	assert.InDelta(t, 0.5, items[1].Score, 1e-9)
}

func TestRecommendExcludesPurchasedFromPersonalized(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	pizza := createTestMenuItem(t, db, "Margherita Pizza", 13.99, "Main Course")
	tiramisu := createTestMenuItem(t, db, "Tiramisu", 6.99, "Dessert")
	espresso := createTestMenuItem(t, db, "Espresso", 2.99, "Beverage")

	target := createTestUser(t, db, "target")
	createTestOrder(t, db, target.ID, []uint{pizza.ID}, 1)

	neighbor := createTestUser(t, db, "neighbor")
	createTestOrder(t, db, neighbor.ID, []uint{pizza.ID, tiramisu.ID, espresso.ID}, 1)

	// Two candidates exist, so a limit of 2 needs no backfill. Items the
	// target already bought never surface through the personalized path.
	items, label, err := svc.Recommend(testContext(), &target.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, LabelPersonalized, label)
	assert.NotContains(t, recommendedIDs(items), pizza.ID)
	assert.ElementsMatch(t, []uint{tiramisu.ID, espresso.ID}, recommendedIDs(items))
	for _, item := range items {
		assert.Equal(t, ReasonTaste, item.RecommendationReason)
	}
}

func TestRecommendDedupesRepeatNeighborPurchases(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	pizza := createTestMenuItem(t, db, "Margherita Pizza", 13.99, "Main Course")
	tiramisu := createTestMenuItem(t, db, "Tiramisu", 6.99, "Dessert")

	target := createTestUser(t, db, "target")
	createTestOrder(t, db, target.ID, []uint{pizza.ID}, 1)

	// The neighbor ordered tiramisu three separate times; the weight must
	// still count once.
	regular := createTestUser(t, db, "regular")
	createTestOrder(t, db, regular.ID, []uint{pizza.ID}, 1)
	createTestOrder(t, db, regular.ID, []uint{tiramisu.ID}, 1)
	createTestOrder(t, db, regular.ID, []uint{tiramisu.ID}, 1)
	createTestOrder(t, db, regular.ID, []uint{tiramisu.ID}, 1)

	items, _, err := svc.Recommend(testContext(), &target.ID, 1)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, tiramisu.ID, items[0].ID)
	assert.InDelta(t, 1.0, items[0].Score, 1e-9)
}

func TestRecommendBackfillsToRequestedLength(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	pizza := createTestMenuItem(t, db, "Margherita Pizza", 13.99, "Main Course")
	tiramisu := createTestMenuItem(t, db, "Tiramisu", 6.99, "Dessert")
	createTestMenuItem(t, db, "Caesar Salad", 8.99, "Salad")
	createTestMenuItem(t, db, "Espresso", 2.99, "Beverage")

	target := createTestUser(t, db, "target")
	createTestOrder(t, db, target.ID, []uint{pizza.ID}, 1)

	neighbor := createTestUser(t, db, "neighbor")
	createTestOrder(t, db, neighbor.ID, []uint{pizza.ID, tiramisu.ID}, 1)

	// Only one personalized candidate exists; the rest of the list comes from
	// the popularity backfill and the catalog pad.
	items, label, err := svc.Recommend(testContext(), &target.ID, 3)

	require.NoError(t, err)
	assert.Equal(t, LabelPersonalized, label)
	require.Len(t, items, 3)

	assert.Equal(t, tiramisu.ID, items[0].ID)
	assert.Equal(t, ReasonTaste, items[0].RecommendationReason)

	ids := recommendedIDs(items)
	seen := make(map[uint]struct{})
	for _, id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate recommendation id %d", id)
		seen[id] = struct{}{}
	}
}

func TestRecommendLimitLargerThanCatalog(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	createTestMenuItem(t, db, "Tiramisu", 6.99, "Dessert")
	createTestMenuItem(t, db, "Espresso", 2.99, "Beverage")

	items, label, err := svc.Recommend(testContext(), nil, 10)

	require.NoError(t, err)
	assert.Equal(t, LabelPopular, label)
	// The whole catalog, no more.
	assert.Len(t, items, 2)
}

func TestPopularItemsPadsWithChefsPicks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	carbonara := createTestMenuItem(t, db, "Carbonara", 15.99, "Main Course")
	createTestMenuItem(t, db, "Tiramisu", 6.99, "Dessert")
	createTestMenuItem(t, db, "Espresso", 2.99, "Beverage")

	buyer := createTestUser(t, db, "buyer")
	createTestOrder(t, db, buyer.ID, []uint{carbonara.ID}, 2)

	items, err := svc.PopularItems(testContext(), 3)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, carbonara.ID, items[0].ID)
	assert.Equal(t, ReasonPopular, items[0].RecommendationReason)
	assert.Equal(t, ReasonChefsPick, items[1].RecommendationReason)
	assert.Equal(t, ReasonChefsPick, items[2].RecommendationReason)
	assert.Equal(t, 0.0, items[1].Score)
}

func TestPopularItemsEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	items, err := svc.PopularItems(testContext(), 3)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPopularItemsDefaultImage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	createTestMenuItem(t, db, "Tiramisu", 6.99, "Dessert")

	items, err := svc.PopularItems(testContext(), 1)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/static/images/blank.png", items[0].ImageURL)
}
