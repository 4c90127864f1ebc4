package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"wishlist/internal/cache"
	apperrors "wishlist/internal/errors"
	"wishlist/internal/model"
	"wishlist/internal/repository"
)

const itemsCacheTTL = 5 * time.Minute

// ItemService exposes wishlist item operations. Ownership checks live at the
// handler boundary; callers must have attached the owning user before Create.
type ItemService interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint) (*model.Item, error)
	FindByOwner(ctx context.Context, userID uint) ([]model.Item, error)
	Update(ctx context.Context, id uint, name, description, link string) (*model.Item, error)
	DeleteByID(ctx context.Context, id uint) error
}

type itemService struct {
	repo  repository.ItemRepository
	cache *cache.Client
}

// NewItemService builds an ItemService with repository and cache.
func NewItemService(repo repository.ItemRepository, cache *cache.Client) ItemService {
	return &itemService{repo: repo, cache: cache}
}

func (s *itemService) cacheKey(userID uint) string {
	return fmt.Sprintf("items:%d", userID)
}

func (s *itemService) Create(ctx context.Context, item *model.Item) error {
	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(item.UserID))
	return nil
}

func (s *itemService) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) FindByOwner(ctx context.Context, userID uint) ([]model.Item, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached []model.Item
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, itemsCacheTTL)
	}
	return items, nil
}

// Update overwrites name, description and link in a single read-modify-write
// transaction. ID and owner are immutable.
func (s *itemService) Update(ctx context.Context, id uint, name, description, link string) (*model.Item, error) {
	var updated *model.Item
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ItemRepository) error {
		item, err := txRepo.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrItemNotFound
		}
		if err != nil {
			return err
		}
		item.Name = name
		item.Description = description
		item.Link = link
		if err := txRepo.Save(ctx, item); err != nil {
			return fmt.Errorf("save item: %w", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(updated.UserID))
	return updated, nil
}

// DeleteByID removes the item. Deleting an id that does not exist is a no-op.
func (s *itemService) DeleteByID(ctx context.Context, id uint) error {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(item.UserID))
	return nil
}
