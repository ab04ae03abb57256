package persistent

import (
	"context"
	"errors"

	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetStats(ctx context.Context, id string) (*entity.PostStats, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return err
	}

	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrPostNotFound
	}

	var postModel model.PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrPostNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetStats(ctx context.Context, id string) (*entity.PostStats, error) {
	db := r.db.WithContext(ctx)

	var seats int64
	if err := db.Model(&model.InvestorSeatModel{}).Where("post_id = ?", id).Count(&seats).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		AccessKind string
		Total      int64
	}
	if err := db.Model(&model.UnlockRecordModel{}).
		Select("access_kind, COUNT(*) AS total").
		Where("post_id = ?", id).
		Group("access_kind").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	stats := &entity.PostStats{InvestorCount: int(seats)}
	for _, c := range counts {
		switch entity.AccessKind(c.AccessKind) {
		case entity.AccessContent:
			stats.ContentUnlocks = int(c.Total)
		case entity.AccessComments:
			stats.CommentUnlocks = int(c.Total)
		}
	}
	return stats, nil
}
