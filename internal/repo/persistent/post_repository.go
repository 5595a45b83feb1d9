package persistent

import (
	"errors"

	"inkpress/internal/entity"
	"inkpress/internal/model"

	"gorm.io/gorm"
)

// ErrDuplicateSlug is returned when a write collides with the unique slug
// index. The probe-and-retry in the slug generator is only a best-effort
// pre-check; the index is the real guarantee.
var ErrDuplicateSlug = errors.New("slug already exists")

var ErrNotFound = errors.New("post not found")

type ListQuery struct {
	Page     int
	Limit    int
	Category string
	Tag      string
}

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	GetBySlug(slug string, publishedOnly bool) (*entity.Post, error)
	List(q ListQuery) ([]*entity.Post, int64, error)
	Update(post *entity.Post) error
	Delete(id string) error
	IncrementViews(id string) error
	SlugExists(slug, excludeID string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		return translate(err)
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetBySlug(slug string, publishedOnly bool) (*entity.Post, error) {
	var postModel model.PostModel
	query := r.db.Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("status = ?", string(entity.StatusPublished))
	}
	if err := query.First(&postModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToPostEntity(&postModel), nil
}

// List returns published posts newest-first with the content column left
// unloaded, plus the total row count for pagination.
func (r *postRepository) List(q ListQuery) ([]*entity.Post, int64, error) {
	base := r.db.Model(&model.PostModel{}).Where("status = ?", string(entity.StatusPublished))

	if q.Category != "" {
		base = base.Where("? = ANY(categories)", q.Category)
	}
	if q.Tag != "" {
		base = base.Where("? = ANY(tags)", q.Tag)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit

	var postModels []model.PostModel
	err := base.
		Omit("content").
		Order("published_at DESC").
		Limit(q.Limit).
		Offset(offset).
		Find(&postModels).Error
	if err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, total, nil
}

func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Save(postModel).Error; err != nil {
		return translate(err)
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.PostModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps the counter atomically in the database rather than
// read-modify-write, so concurrent fetches never lose increments.
func (r *postRepository) IncrementViews(id string) error {
	return r.db.Model(&model.PostModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *postRepository) SlugExists(slug, excludeID string) (bool, error) {
	query := r.db.Model(&model.PostModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateSlug
	default:
		return err
	}
}
