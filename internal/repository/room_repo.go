package repository

import (
	"context"
	"time"

	"roomreserve/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// is_available is deliberately absent from the update path here: only the
// booking engine's transactions flip it.
type roomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Number      int       `gorm:"column:number;uniqueIndex"`
	Category    string    `gorm:"column:category"`
	Description *string   `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Capacity    int       `gorm:"column:capacity"`
	Amenities   []string  `gorm:"column:amenities;serializer:json"`
	IsAvailable bool      `gorm:"column:is_available"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.Room{
		ID:          m.ID,
		Name:        m.Name,
		Number:      m.Number,
		Category:    domain.RoomCategory(m.Category),
		Description: desc,
		Price:       m.Price,
		Capacity:    m.Capacity,
		Amenities:   m.Amenities,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var desc *string
	if r.Description != "" {
		v := r.Description
		desc = &v
	}

	return roomModel{
		ID:          r.ID,
		Name:        r.Name,
		Number:      r.Number,
		Category:    string(r.Category),
		Description: desc,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Amenities:   r.Amenities,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*room = *toDomainRoom(m)
	return nil
}

// Update rewrites the descriptive fields of an existing room. The
// availability flag is owned by the booking engine and left untouched.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// struct update with an explicit column list so the amenities
	// serializer applies; a map value would skip it
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", room.ID).
		Select("name", "number", "category", "description", "price", "capacity", "amenities").
		Updates(&m)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ListAvailable(ctx context.Context) ([]domain.Room, error) {
	return r.list(ctx, r.db.Where("is_available = ?", true))
}

func (r *RoomRepository) ListAll(ctx context.Context) ([]domain.Room, error) {
	return r.list(ctx, r.db)
}

func (r *RoomRepository) list(ctx context.Context, q *gorm.DB) ([]domain.Room, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var ms []roomModel
	tx := q.WithContext(ctx).Order("number").Find(&ms)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}

	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cnt int64
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Count(&cnt)
	if tx.Error != nil {
		return 0, translate(tx.Error)
	}
	return cnt, nil
}
