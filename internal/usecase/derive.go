package usecase

import (
	"strings"
	"time"

	"inkpress/internal/entity"
)

const wordsPerMinute = 200

// ReadTime estimates reading minutes as ceil(wordCount / 200).
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// DefaultMetaDescription falls back to the first 160 characters of the
// summary when no explicit meta description was supplied.
func DefaultMetaDescription(meta, summary string) string {
	if meta != "" {
		return meta
	}
	runes := []rune(summary)
	if len(runes) > 160 {
		runes = runes[:160]
	}
	return string(runes)
}

// ApplyStatus moves the post to newStatus and stamps PublishedAt on the
// first transition to published. Republishing never changes the stamp.
func ApplyStatus(post *entity.Post, newStatus entity.PostStatus, now time.Time) {
	post.Status = newStatus
	if newStatus == entity.StatusPublished && post.PublishedAt == nil {
		publishedAt := now
		post.PublishedAt = &publishedAt
	}
}
