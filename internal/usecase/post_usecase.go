package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"inkpress/internal/entity"
	"inkpress/internal/repo/persistent"
	"inkpress/internal/slug"
	"inkpress/pkg/logger"
	"inkpress/pkg/queue"
	"inkpress/pkg/s3"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const postCacheTTL = 10 * time.Minute

// MediaStore is the object-storage contract the post service needs; the S3
// client satisfies it.
type MediaStore interface {
	Upload(key string, file multipart.File, contentType string) (string, error)
	Delete(key string) error
}

type CreatePostInput struct {
	Title           string
	Slug            string
	Summary         string
	Content         string
	Categories      []string
	TagsJSON        string
	MetaDescription string
	Status          string
	Author          string
}

type UpdatePostInput struct {
	Title           *string
	Slug            *string
	Summary         *string
	Content         *string
	Categories      []string
	TagsJSON        *string
	MetaDescription *string
	Status          *string
	Author          *string
}

type PostUseCase interface {
	CreatePost(input CreatePostInput, image *multipart.FileHeader) (*entity.Post, error)
	ListPosts(page, limit int, category, tag string) ([]*entity.Post, int64, error)
	GetPostBySlug(slugValue string) (*entity.Post, error)
	UpdatePost(id string, input UpdatePostInput, image *multipart.FileHeader) (*entity.Post, error)
	DeletePost(id string) error
}

type postUseCase struct {
	postRepo      persistent.PostRepository
	media         MediaStore
	redisClient   *redis.Client
	queueClient   *queue.Client
	logger        *logger.Logger
	defaultAuthor string
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	media MediaStore,
	redisClient *redis.Client,
	queueClient *queue.Client,
	log *logger.Logger,
	defaultAuthor string,
) PostUseCase {
	return &postUseCase{
		postRepo:      postRepo,
		media:         media,
		redisClient:   redisClient,
		queueClient:   queueClient,
		logger:        log,
		defaultAuthor: defaultAuthor,
	}
}

func (uc *postUseCase) CreatePost(input CreatePostInput, image *multipart.FileHeader) (*entity.Post, error) {
	if input.Title == "" || input.Summary == "" || input.Content == "" || len(input.Categories) == 0 {
		return nil, validation("Title, summary, content, and category are required")
	}
	if err := checkFieldLengths(input.Title, input.Summary, input.MetaDescription); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, validation("Blog image is required")
	}

	status := entity.PostStatus(input.Status)
	if status == "" {
		status = entity.StatusDraft
	}
	if status != entity.StatusDraft && status != entity.StatusPublished {
		return nil, validation("Status must be either draft or published")
	}

	tags, err := parseTags(input.TagsJSON)
	if err != nil {
		return nil, err
	}

	author := input.Author
	if author == "" {
		author = uc.defaultAuthor
	}

	post := &entity.Post{
		Title:           input.Title,
		Summary:         input.Summary,
		Content:         input.Content,
		Categories:      input.Categories,
		Tags:            tags,
		Author:          author,
		MetaDescription: DefaultMetaDescription(input.MetaDescription, input.Summary),
		ReadTime:        ReadTime(input.Content),
	}
	ApplyStatus(post, status, time.Now())

	if input.Slug != "" {
		cleaned, err := uc.validateExplicitSlug(input.Slug, "")
		if err != nil {
			return nil, err
		}
		post.Slug = cleaned
	} else {
		generated, err := slug.Unique(uc.postRepo, input.Title, "")
		if err != nil {
			return nil, translateSlugErr(err)
		}
		post.Slug = generated
	}

	imageURL, err := uc.uploadImage(image)
	if err != nil {
		return nil, err
	}
	post.Image = imageURL

	if err := uc.postRepo.Create(post); err != nil {
		// Best-effort cleanup of the uploaded image; the primary error is
		// still surfaced to the caller.
		if key := s3.KeyFromURL(imageURL); key != "" {
			if cleanupErr := uc.media.Delete(key); cleanupErr != nil {
				uc.logger.Error("Failed to clean up uploaded image %s: %v", key, cleanupErr)
			}
		}
		if errors.Is(err, persistent.ErrDuplicateSlug) {
			return nil, validation("This slug is already taken by another blog post. Please choose a different one.")
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if post.Published() {
		uc.announcePublished(post)
	}

	return post, nil
}

func (uc *postUseCase) ListPosts(page, limit int, category, tag string) ([]*entity.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	posts, total, err := uc.postRepo.List(persistent.ListQuery{
		Page:     page,
		Limit:    limit,
		Category: category,
		Tag:      tag,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

func (uc *postUseCase) GetPostBySlug(slugValue string) (*entity.Post, error) {
	if cached := uc.cachedPost(slugValue); cached != nil {
		if err := uc.postRepo.IncrementViews(cached.ID); err != nil {
			uc.logger.Warn("Failed to increment views for %s: %v", cached.ID, err)
		} else {
			cached.Views++
		}
		return cached, nil
	}

	post, err := uc.postRepo.GetBySlug(slugValue, true)
	if err != nil {
		return nil, err
	}

	if err := uc.postRepo.IncrementViews(post.ID); err != nil {
		uc.logger.Warn("Failed to increment views for %s: %v", post.ID, err)
	} else {
		post.Views++
	}

	uc.cachePost(post)
	return post, nil
}

func (uc *postUseCase) UpdatePost(id string, input UpdatePostInput, image *multipart.FileHeader) (*entity.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, validation("Invalid blog ID format")
	}

	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	previousSlug := post.Slug
	previousImage := post.Image
	slugExplicit := false

	if input.Slug != nil {
		cleaned, err := uc.validateExplicitSlug(*input.Slug, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = cleaned
		slugExplicit = true
	}

	if input.Title != nil && *input.Title != post.Title {
		post.Title = *input.Title
		if !slugExplicit {
			generated, err := slug.Unique(uc.postRepo, post.Title, post.ID)
			if err != nil {
				return nil, translateSlugErr(err)
			}
			post.Slug = generated
		}
	}

	if input.Summary != nil {
		post.Summary = *input.Summary
	}
	if input.Content != nil && *input.Content != post.Content {
		post.Content = *input.Content
		post.ReadTime = ReadTime(post.Content)
	}
	if input.Categories != nil {
		post.Categories = input.Categories
	}
	if input.TagsJSON != nil {
		tags, err := parseTags(*input.TagsJSON)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}
	if input.MetaDescription != nil {
		post.MetaDescription = *input.MetaDescription
	}
	if input.Author != nil {
		post.Author = *input.Author
	}

	if err := checkFieldLengths(post.Title, post.Summary, post.MetaDescription); err != nil {
		return nil, err
	}
	if post.Title == "" || post.Summary == "" || post.Content == "" || len(post.Categories) == 0 {
		return nil, validation("Title, summary, content, and category are required")
	}

	wasPublished := post.Published()
	if input.Status != nil {
		status := entity.PostStatus(*input.Status)
		if status != entity.StatusDraft && status != entity.StatusPublished {
			return nil, validation("Status must be either draft or published")
		}
		ApplyStatus(post, status, time.Now())
	}

	if image != nil {
		imageURL, err := uc.uploadImage(image)
		if err != nil {
			return nil, err
		}
		post.Image = imageURL

		// Old image removal must not fail the request.
		if key := s3.KeyFromURL(previousImage); key != "" {
			if err := uc.media.Delete(key); err != nil {
				uc.logger.Error("Failed to delete old image %s: %v", key, err)
			}
		}
	}

	if err := uc.postRepo.Update(post); err != nil {
		if errors.Is(err, persistent.ErrDuplicateSlug) {
			return nil, validation("This slug is already taken by another blog post. Please choose a different one.")
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	uc.invalidateCache(previousSlug)
	uc.invalidateCache(post.Slug)

	if !wasPublished && post.Published() {
		uc.announcePublished(post)
	}

	return post, nil
}

func (uc *postUseCase) DeletePost(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return validation("Invalid blog ID format")
	}

	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return err
	}

	// Best-effort: a malformed image URL or a storage failure must not block
	// removal of the database record.
	if key := s3.KeyFromURL(post.Image); key != "" {
		if err := uc.media.Delete(key); err != nil {
			uc.logger.Error("Failed to delete image %s: %v", key, err)
		}
	}

	if err := uc.postRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	uc.invalidateCache(post.Slug)
	return nil
}

func (uc *postUseCase) validateExplicitSlug(raw, excludeID string) (string, error) {
	cleaned := slug.Make(raw)
	if !slug.IsValid(cleaned) {
		return "", validation("Slug can only contain lowercase letters, numbers, and hyphens. No spaces or special characters allowed.")
	}

	exists, err := uc.postRepo.SlugExists(cleaned, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	if exists {
		return "", validation("This slug is already taken by another blog post. Please choose a different one.")
	}
	return cleaned, nil
}

func (uc *postUseCase) uploadImage(image *multipart.FileHeader) (string, error) {
	contentType := image.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", validation("Only image files are allowed")
	}

	src, err := image.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/blog-%s%s", s3.Folder, uuid.New().String(), fileExtension(image.Filename))
	url, err := uc.media.Upload(key, src, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

func (uc *postUseCase) cachedPost(slugValue string) *entity.Post {
	if uc.redisClient == nil {
		return nil
	}

	ctx := context.Background()
	data, err := uc.redisClient.Get(ctx, cacheKey(slugValue)).Result()
	if err != nil {
		return nil
	}

	var post entity.Post
	if err := json.Unmarshal([]byte(data), &post); err != nil {
		return nil
	}
	return &post
}

func (uc *postUseCase) cachePost(post *entity.Post) {
	if uc.redisClient == nil {
		return
	}

	data, err := json.Marshal(post)
	if err != nil {
		return
	}
	uc.redisClient.Set(context.Background(), cacheKey(post.Slug), data, postCacheTTL)
}

func (uc *postUseCase) invalidateCache(slugValue string) {
	if uc.redisClient == nil || slugValue == "" {
		return
	}
	uc.redisClient.Del(context.Background(), cacheKey(slugValue))
}

func (uc *postUseCase) announcePublished(post *entity.Post) {
	if uc.queueClient == nil {
		return
	}

	event := map[string]interface{}{
		"type":    "post_published",
		"post_id": post.ID,
		"slug":    post.Slug,
		"title":   post.Title,
		"author":  post.Author,
	}

	go func() {
		if err := uc.queueClient.PublishPostPublished(event); err != nil {
			uc.logger.Error("Failed to publish post event for %s: %v", post.ID, err)
		}
	}()
}

func checkFieldLengths(title, summary, meta string) error {
	if len([]rune(title)) > 100 {
		return validation("Title must be 100 characters or fewer")
	}
	if len([]rune(summary)) > 200 {
		return validation("Summary must be 200 characters or fewer")
	}
	if len([]rune(meta)) > 160 {
		return validation("Meta description must be 160 characters or fewer")
	}
	return nil
}

func parseTags(tagsJSON string) ([]string, error) {
	if tagsJSON == "" {
		return []string{}, nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return nil, validation("Invalid tags format. Please provide tags as a valid JSON array.")
	}

	for i, tag := range tags {
		tags[i] = strings.TrimSpace(tag)
	}
	return tags, nil
}

func cacheKey(slugValue string) string {
	return "post:slug:" + slugValue
}

func fileExtension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[idx:]
	}
	return ""
}

func translateSlugErr(err error) error {
	if errors.Is(err, slug.ErrEmpty) || errors.Is(err, slug.ErrExhausted) {
		return validation("%s", err.Error())
	}
	return fmt.Errorf("failed to generate slug: %w", err)
}
