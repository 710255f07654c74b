package models

import (
	"regexp"
	"strings"
)

type Post struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    int64  `json:"authorId"`
	Slug        string `json:"slug"`
	IsPublished bool   `json:"isPublished"`
}

// PostCategory associates a post with a category. No independent identity;
// the (postId, categoryId) pair is the key.
type PostCategory struct {
	PostID     int64 `json:"postId"`
	CategoryID int64 `json:"categoryId"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives a post slug from its title: trimmed, lowercased, internal
// whitespace runs collapsed to a single hyphen. Nothing else is altered, so
// slugs stay stable for titles containing punctuation.
func Slugify(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}
