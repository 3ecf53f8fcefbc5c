package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapore/backend/internal/models"
	"github.com/sapore/backend/internal/sorting"
)

// Recommendation reasons and list labels surfaced to the frontend.
const (
	ReasonTaste     = "Based on Your Taste"
	ReasonPopular   = "Popular Choice"
	ReasonChefsPick = "Chef's Pick"

	LabelPersonalized = "Recommended for You"
	LabelPopular      = "Popular Items"
)

const defaultImageURL = "/static/images/blank.png"

// RecommendedItem is one entry of a recommendation list.
type RecommendedItem struct {
	ID                   uint    `json:"id"`
	Name                 string  `json:"name"`
	Price                float64 `json:"price"`
	Description          string  `json:"description"`
	ImageURL             string  `json:"image_url"`
	Category             string  `json:"category"`
	Rating               float64 `json:"rating"`
	RecommendationReason string  `json:"recommendation_reason"`
	Score                float64 `json:"score"`
}

// RecommendationService implements the collaborative-filtering recommender.
//
// The personalized path walks purchase history → neighbor discovery →
// candidate scoring → ranking. Every stage short-circuits to the popularity
// fallback when it comes up empty, so an anonymous visitor, a cold-start user
// and a user with no overlapping neighbors all still get a full list.
type RecommendationService struct {
	db *gorm.DB
}

// NewRecommendationService creates a new RecommendationService instance.
func NewRecommendationService(db *gorm.DB) *RecommendationService {
	return &RecommendationService{db: db}
}

// purchasePair is one (user, item) purchase fact scanned from the join of
// orders and order_items.
type purchasePair struct {
	UserID     uuid.UUID `gorm:"column:user_id"`
	MenuItemID uint      `gorm:"column:menu_item_id"`
}

// Recommend returns up to limit items and the list label. A nil userID means
// an anonymous visitor and goes straight to the popularity fallback.
func (s *RecommendationService) Recommend(ctx context.Context, userID *uuid.UUID, limit int) ([]RecommendedItem, string, error) {
	if userID == nil {
		items, err := s.PopularItems(ctx, limit)
		return items, LabelPopular, err
	}

	purchased, err := s.purchaseHistory(ctx, *userID)
	if err != nil {
		return nil, "", err
	}
	if len(purchased) == 0 {
		items, err := s.PopularItems(ctx, limit)
		return items, LabelPopular, err
	}

	neighbors, err := s.similarUsers(ctx, *userID, purchased)
	if err != nil {
		return nil, "", err
	}
	if len(neighbors) == 0 {
		items, err := s.PopularItems(ctx, limit)
		return items, LabelPopular, err
	}

	scores, err := s.candidateScores(ctx, purchased, neighbors)
	if err != nil {
		return nil, "", err
	}
	if len(scores) == 0 {
		items, err := s.PopularItems(ctx, limit)
		return items, LabelPopular, err
	}

	type candidate struct {
		itemID uint
		score  float64
	}
	candidates := make([]candidate, 0, len(scores))
	for itemID, score := range scores {
		candidates = append(candidates, candidate{itemID: itemID, score: score})
	}
	ranked := sorting.QuickSortBalanced(candidates, func(c candidate) float64 { return c.score }, true)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]uint, 0, len(ranked))
	for _, c := range ranked {
		ids = append(ids, c.itemID)
	}
	details, err := s.fetchItems(ctx, ids)
	if err != nil {
		return nil, "", err
	}

	result := make([]RecommendedItem, 0, limit)
	used := make(map[uint]struct{})
	for _, c := range ranked {
		item, ok := details[c.itemID]
		if !ok {
			continue
		}
		result = append(result, toRecommendedItem(item, ReasonTaste, c.score))
		used[c.itemID] = struct{}{}
	}

	if len(result) == 0 {
		items, err := s.PopularItems(ctx, limit)
		return items, LabelPopular, err
	}

	// Backfill with popular items, then arbitrary catalog items, so the list
	// still reaches the requested length when personalization is sparse.
	if len(result) < limit {
		result, err = s.backfillPopular(ctx, result, used, limit)
		if err != nil {
			return nil, "", err
		}
	}

	return result, LabelPersonalized, nil
}

// purchaseHistory returns the distinct menu item ids the user ever ordered.
func (s *RecommendationService) purchaseHistory(ctx context.Context, userID uuid.UUID) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Distinct("order_items.menu_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Pluck("order_items.menu_item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// similarUsers finds every other user sharing at least one purchased item with
// the target, weighted by the fraction of the target's items they also bought.
// Only purchase pairs touching the target's item set are fetched.
func (s *RecommendationService) similarUsers(ctx context.Context, targetID uuid.UUID, purchased []uint) (map[uuid.UUID]float64, error) {
	var pairs []purchasePair
	err := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("DISTINCT orders.user_id, order_items.menu_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.menu_item_id IN ?", purchased).
		Where("orders.user_id <> ?", targetID).
		Scan(&pairs).Error
	if err != nil {
		return nil, err
	}

	overlap := make(map[uuid.UUID]map[uint]struct{})
	for _, pair := range pairs {
		set, ok := overlap[pair.UserID]
		if !ok {
			set = make(map[uint]struct{})
			overlap[pair.UserID] = set
		}
		set[pair.MenuItemID] = struct{}{}
	}

	similar := make(map[uuid.UUID]float64, len(overlap))
	for userID, set := range overlap {
		if len(set) == 0 {
			continue
		}
		similar[userID] = float64(len(set)) / float64(len(purchased))
	}
	return similar, nil
}

// candidateScores accumulates neighbor similarity weights per item the target
// never purchased. Pairs are deduplicated in memory before accumulation so a
// neighbor's repeat purchases contribute at most once per item.
func (s *RecommendationService) candidateScores(ctx context.Context, purchased []uint, neighbors map[uuid.UUID]float64) (map[uint]float64, error) {
	neighborIDs := make([]uuid.UUID, 0, len(neighbors))
	for userID := range neighbors {
		neighborIDs = append(neighborIDs, userID)
	}

	var pairs []purchasePair
	err := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("DISTINCT orders.user_id, order_items.menu_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id IN ?", neighborIDs).
		Where("order_items.menu_item_id NOT IN ?", purchased).
		Scan(&pairs).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[purchasePair]struct{}, len(pairs))
	scores := make(map[uint]float64)
	for _, pair := range pairs {
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		if weight, ok := neighbors[pair.UserID]; ok {
			scores[pair.MenuItemID] += weight
		}
	}
	return scores, nil
}

// PopularItems is the cold-start fallback: quantity-weighted sales counts
// summed in memory over every order line, ranked descending, padded with
// arbitrary catalog items when the order history is too sparse.
func (s *RecommendationService) PopularItems(ctx context.Context, limit int) ([]RecommendedItem, error) {
	result := make([]RecommendedItem, 0, limit)
	if limit <= 0 {
		return result, nil
	}

	rankedIDs, sales, err := s.rankBySales(ctx)
	if err != nil {
		return nil, err
	}
	if len(rankedIDs) > limit {
		rankedIDs = rankedIDs[:limit]
	}

	details, err := s.fetchItems(ctx, rankedIDs)
	if err != nil {
		return nil, err
	}

	used := make(map[uint]struct{})
	for _, itemID := range rankedIDs {
		item, ok := details[itemID]
		if !ok {
			continue
		}
		result = append(result, toRecommendedItem(item, ReasonPopular, sales[itemID]))
		used[itemID] = struct{}{}
	}

	return s.padWithCatalog(ctx, result, used, limit)
}

// rankBySales returns menu item ids ordered by total purchased quantity,
// highest first. The aggregation is a plain O(n) scan over order lines.
func (s *RecommendationService) rankBySales(ctx context.Context) ([]uint, map[uint]float64, error) {
	var lines []models.OrderItem
	err := s.db.WithContext(ctx).
		Select("menu_item_id", "quantity").
		Find(&lines).Error
	if err != nil {
		return nil, nil, err
	}

	sales := make(map[uint]float64)
	for _, line := range lines {
		sales[line.MenuItemID] += float64(line.Quantity)
	}

	type salesEntry struct {
		itemID uint
		score  float64
	}
	entries := make([]salesEntry, 0, len(sales))
	for itemID, score := range sales {
		entries = append(entries, salesEntry{itemID: itemID, score: score})
	}
	ranked := sorting.QuickSortBalanced(entries, func(e salesEntry) float64 { return e.score }, true)

	ids := make([]uint, 0, len(ranked))
	for _, e := range ranked {
		ids = append(ids, e.itemID)
	}
	return ids, sales, nil
}

// backfillPopular extends a personalized result with popular items the list
// does not already contain, then pads from the catalog.
func (s *RecommendationService) backfillPopular(ctx context.Context, result []RecommendedItem, used map[uint]struct{}, limit int) ([]RecommendedItem, error) {
	rankedIDs, sales, err := s.rankBySales(ctx)
	if err != nil {
		return nil, err
	}

	missing := make([]uint, 0)
	for _, itemID := range rankedIDs {
		if len(result)+len(missing) >= limit {
			break
		}
		if _, ok := used[itemID]; ok {
			continue
		}
		missing = append(missing, itemID)
	}

	details, err := s.fetchItems(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, itemID := range missing {
		item, ok := details[itemID]
		if !ok {
			continue
		}
		result = append(result, toRecommendedItem(item, ReasonPopular, sales[itemID]))
		used[itemID] = struct{}{}
	}

	return s.padWithCatalog(ctx, result, used, limit)
}

// padWithCatalog fills the remainder of the list with catalog items not yet
// included, reason "Chef's Pick", score 0.
func (s *RecommendationService) padWithCatalog(ctx context.Context, result []RecommendedItem, used map[uint]struct{}, limit int) ([]RecommendedItem, error) {
	if len(result) >= limit {
		return result, nil
	}

	query := s.db.WithContext(ctx).Limit(limit - len(result))
	if len(used) > 0 {
		exclude := make([]uint, 0, len(used))
		for itemID := range used {
			exclude = append(exclude, itemID)
		}
		query = query.Where("id NOT IN ?", exclude)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		result = append(result, toRecommendedItem(item, ReasonChefsPick, 0))
		used[item.ID] = struct{}{}
	}
	return result, nil
}

// fetchItems loads menu item details for the given ids, keyed by id.
func (s *RecommendationService) fetchItems(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	details := make(map[uint]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return details, nil
	}

	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		details[item.ID] = item
	}
	return details, nil
}

func toRecommendedItem(item models.MenuItem, reason string, score float64) RecommendedItem {
	imageURL := item.ImageURL
	if imageURL == "" {
		imageURL = defaultImageURL
	}
	return RecommendedItem{
		ID:                   item.ID,
		Name:                 item.Name,
		Price:                item.Price,
		Description:          item.Description,
		ImageURL:             imageURL,
		Category:             item.Category,
		Rating:               item.Rating,
		RecommendationReason: reason,
		Score:                score,
	}
}
