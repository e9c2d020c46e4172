package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/rueidis"
	"gorm.io/gorm"

	"taskboard.com/taskboard/internal/fixtures"
	model "taskboard.com/taskboard/internal/models"
)

const (
	usersCacheKey     = "reference:users"
	buildingsCacheKey = "reference:buildings"
	referenceCacheTTL = 5 * time.Minute
)

// ReferenceRepository serves the user and building reference sets. These are
// immutable in this system (owned by an external directory), so reads may be
// served from an optional redis read-through cache.
type ReferenceRepository struct {
	db    *gorm.DB
	redis rueidis.Client
}

// NewReferenceRepository creates the repository. redis may be nil, in which
// case every read goes to the database.
func NewReferenceRepository(db *gorm.DB, redis rueidis.Client) *ReferenceRepository {
	return &ReferenceRepository{db: db, redis: redis}
}

func (r *ReferenceRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if r.cacheGet(ctx, usersCacheKey, &users) {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	r.cacheSet(ctx, usersCacheKey, users)
	return users, nil
}

func (r *ReferenceRepository) ListBuildings(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	if r.cacheGet(ctx, buildingsCacheKey, &buildings) {
		return buildings, nil
	}
	if err := r.db.WithContext(ctx).Order("id").Find(&buildings).Error; err != nil {
		return nil, err
	}
	r.cacheSet(ctx, buildingsCacheKey, buildings)
	return buildings, nil
}

func (r *ReferenceRepository) UserExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ReferenceRepository) BuildingExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Building{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SeedIfEmpty loads the fixture users and buildings on first boot so the
// service is usable without an external directory import.
func (r *ReferenceRepository) SeedIfEmpty(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := fixtures.Users()
	if err := r.db.WithContext(ctx).Create(&users).Error; err != nil {
		return err
	}
	buildings := fixtures.Buildings()
	return r.db.WithContext(ctx).Create(&buildings).Error
}

func (r *ReferenceRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.redis == nil {
		return false
	}

	result := r.redis.Do(ctx, r.redis.B().Get().Key(key).Build())
	if err := result.Error(); err != nil {
		if !rueidis.IsRedisNil(err) {
			log.Printf("reference cache read failed for %s: %v", key, err)
		}
		return false
	}

	raw, err := result.AsBytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (r *ReferenceRepository) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.redis == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	cmd := r.redis.B().Set().Key(key).Value(string(raw)).
		Ex(referenceCacheTTL).Build()
	if err := r.redis.Do(ctx, cmd).Error(); err != nil {
		log.Printf("reference cache write failed for %s: %v", key, err)
	}
}
