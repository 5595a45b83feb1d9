package main

import (
	"fmt"
	"time"

	"inkpress/internal/entity"
	"inkpress/internal/repo/persistent"
	"inkpress/internal/slug"
	"inkpress/internal/usecase"
	"inkpress/pkg/config"
	"inkpress/pkg/database"
	"inkpress/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	repo := persistent.NewPostRepository(db)

	samples := []struct {
		title      string
		summary    string
		content    string
		categories []string
		tags       []string
		status     entity.PostStatus
	}{
		{
			title:      "Getting Started with Inkpress",
			summary:    "A quick tour of the blog publishing workflow, from draft to published.",
			content:    "Write a draft, attach an image, and publish when ready. " + loremWords(250),
			categories: []string{"meta"},
			tags:       []string{"tutorial"},
			status:     entity.StatusPublished,
		},
		{
			title:      "Cloud Basics",
			summary:    "What you need to know before deploying your first cloud workload.",
			content:    loremWords(420),
			categories: []string{"cloud"},
			tags:       []string{"cloud", "beginners"},
			status:     entity.StatusPublished,
		},
		{
			title:      "Work in Progress",
			summary:    "An unpublished draft used to exercise the draft workflow.",
			content:    loremWords(120),
			categories: []string{"meta"},
			status:     entity.StatusDraft,
		},
	}

	for _, sample := range samples {
		existing, err := repo.SlugExists(slug.Make(sample.title), "")
		if err != nil {
			log.Error("Failed to probe slug for %q: %v", sample.title, err)
			panic(err)
		}
		if existing {
			log.Info("Skipping %q, already seeded", sample.title)
			continue
		}

		uniqueSlug, err := slug.Unique(repo, sample.title, "")
		if err != nil {
			log.Error("Failed to derive slug for %q: %v", sample.title, err)
			panic(err)
		}

		post := &entity.Post{
			Title:           sample.title,
			Slug:            uniqueSlug,
			Summary:         sample.summary,
			Content:         sample.content,
			Image:           "https://placehold.co/1200x630.webp",
			Categories:      sample.categories,
			Tags:            sample.tags,
			Author:          cfg.DefaultAuthor,
			MetaDescription: usecase.DefaultMetaDescription("", sample.summary),
			ReadTime:        usecase.ReadTime(sample.content),
		}
		usecase.ApplyStatus(post, sample.status, time.Now())

		if err := repo.Create(post); err != nil {
			log.Error("Failed to seed %q: %v", sample.title, err)
			panic(err)
		}
		log.Info("Seeded %q as %s", sample.title, post.Slug)
	}

	log.Info("Database seeded successfully!")
}

func loremWords(n int) string {
	words := []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit"}
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += " "
		}
		out += words[i%len(words)]
	}
	return out
}
