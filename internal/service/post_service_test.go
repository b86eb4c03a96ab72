package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atelierhq/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T, models ...interface{}) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestPostCreateNormalizesTags(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, &db.Post{})
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{
		Title:   "Rebranding a Coastal Hotel",
		Content: "Full case study body.",
		Tags:    "Brand Strategy, Marketing,  Design",
		Status:  "published",
	})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	want := []string{"Brand Strategy", "Marketing", "Design"}
	if len(post.Tags) != len(want) {
		t.Fatalf("expected %d tags, got %v", len(want), post.Tags)
	}
	for i, tag := range want {
		if post.Tags[i] != tag {
			t.Fatalf("expected tag %q at %d, got %q", tag, i, post.Tags[i])
		}
	}

	if got := svc.FormTags(post); got != "Brand Strategy, Marketing, Design" {
		t.Fatalf("unexpected form tags %q", got)
	}
}

func TestPostCreateDerivesSlug(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, &db.Post{})
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{Title: "Why Motion Matters", Content: "body"})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if post.Slug != "why-motion-matters" {
		t.Fatalf("expected derived slug, got %q", post.Slug)
	}
	if post.Status != db.PostStatusDraft {
		t.Fatalf("expected status to default to draft, got %q", post.Status)
	}
}

func TestPostCreateValidation(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, &db.Post{})
	defer cleanup()

	svc := NewPostService(gdb)

	if _, err := svc.Create(PostInput{Content: "no title"}); !IsValidation(err) {
		t.Fatalf("expected validation error for missing title, got %v", err)
	}
	if _, err := svc.Create(PostInput{Title: "x", Status: "archived"}); !IsValidation(err) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}

	var count int64
	gdb.Model(&db.Post{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows written, got %d", count)
	}
}

func TestPostSlugConflict(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, &db.Post{})
	defer cleanup()

	svc := NewPostService(gdb)
	if _, err := svc.Create(PostInput{Title: "Launch Notes", Slug: "launch-notes"}); err != nil {
		t.Fatalf("failed to create first post: %v", err)
	}

	if _, err := svc.Create(PostInput{Title: "Other", Slug: "launch-notes"}); !errors.Is(err, ErrPostSlugTaken) {
		t.Fatalf("expected ErrPostSlugTaken, got %v", err)
	}

	var count int64
	gdb.Model(&db.Post{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one row, got %d", count)
	}
}

func TestPostUpdateAndDelete(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, &db.Post{})
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{Title: "Draft Notes", Content: "v1"})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	updated, err := svc.Update(post.ID, PostInput{
		Title:   "Draft Notes",
		Slug:    post.Slug,
		Content: "v2",
		Status:  "published",
	})
	if err != nil {
		t.Fatalf("failed to update post: %v", err)
	}
	if updated.Content != "v2" || updated.Status != db.PostStatusPublished {
		t.Fatalf("expected updated fields to persist, got %+v", updated)
	}

	if err := svc.Delete(post.ID); err != nil {
		t.Fatalf("failed to delete post: %v", err)
	}
	if err := svc.Delete(post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound on second delete, got %v", err)
	}
	if _, err := svc.GetBySlug(post.Slug); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
}

func TestPostListPublishedOrder(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, &db.Post{})
	defer cleanup()

	svc := NewPostService(gdb)
	older := db.Post{Title: "Older", Slug: "older", Status: db.PostStatusPublished, CreatedAt: time.Now().Add(-time.Hour)}
	newer := db.Post{Title: "Newer", Slug: "newer", Status: db.PostStatusPublished, CreatedAt: time.Now()}
	draft := db.Post{Title: "Draft", Slug: "draft", Status: db.PostStatusDraft, CreatedAt: time.Now()}
	for _, p := range []*db.Post{&older, &newer, &draft} {
		if err := gdb.Create(p).Error; err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}

	posts, err := svc.ListPublished()
	if err != nil {
		t.Fatalf("failed to list published posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 published posts, got %d", len(posts))
	}
	if posts[0].Slug != "newer" || posts[1].Slug != "older" {
		t.Fatalf("expected newest first, got %q then %q", posts[0].Slug, posts[1].Slug)
	}
}
