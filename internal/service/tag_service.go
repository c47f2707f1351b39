package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"matchmaker/internal/cache"
	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
	"matchmaker/internal/repository"
)

const (
	tagListCacheKey = "tags:all"
	tagListGenKey   = "tags:gen"
	tagListCacheTTL = 5 * time.Minute
	tagSeparator    = "|"
)

// tagListKey names the cached list for a vocabulary generation. Creating a tag
// bumps the generation, so a list read before the insert but written after it
// lands under a key no reader asks for again.
func tagListKey(gen []byte) string {
	if len(gen) == 0 {
		return tagListCacheKey + ":0"
	}
	return tagListCacheKey + ":" + string(gen)
}

// TagService manages the global tag vocabulary.
// Names are case-sensitive and stored exactly as given.
type TagService interface {
	GetOrInsert(ctx context.Context, name string) (*model.Tag, error)
	GetOrInsertAll(ctx context.Context, names []string) ([]model.Tag, error)
	ListNames(ctx context.Context) ([]string, error)
}

type tagService struct {
	repo  repository.TagRepository
	cache *cache.Client
}

// NewTagService creates a new tag service.
func NewTagService(repo repository.TagRepository, cache *cache.Client) TagService {
	return &tagService{repo: repo, cache: cache}
}

// ParseTagList splits the pipe-delimited tags field. Empty segments and
// repeated names are dropped; order of first appearance is kept.
func ParseTagList(raw string) []string {
	if raw == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, name := range strings.Split(raw, tagSeparator) {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// CheckTagNames rejects any name longer than model.MaxTagLength characters.
func CheckTagNames(names []string) error {
	for _, name := range names {
		if utf8.RuneCountInString(name) > model.MaxTagLength {
			return apperrors.NewValidationError("tags",
				fmt.Sprintf("Each tag cannot be longer than %d characters.", model.MaxTagLength))
		}
	}
	return nil
}

// JoinTagList is the inverse of ParseTagList, used to pre-fill the edit form.
func JoinTagList(names []string) string {
	return strings.Join(names, tagSeparator)
}

// GetOrInsert returns the tag called name, creating it first if needed.
// Calling it twice with the same name yields one row.
func (s *tagService) GetOrInsert(ctx context.Context, name string) (*model.Tag, error) {
	created, err := s.repo.Insert(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("insert tag %q: %w", name, err)
	}
	if created {
		log.Ctx(ctx).Debug().Str("tag", name).Msg("tag created")
		s.cache.Incr(ctx, tagListGenKey)
	}
	return &model.Tag{Name: name}, nil
}

// GetOrInsertAll resolves every name, in order.
func (s *tagService) GetOrInsertAll(ctx context.Context, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.GetOrInsert(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// ListNames returns every tag name, read through the cache.
func (s *tagService) ListNames(ctx context.Context) ([]string, error) {
	gen, _ := s.cache.Get(ctx, tagListGenKey)
	key := tagListKey(gen)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	if payload, err := json.Marshal(names); err == nil {
		_ = s.cache.Set(ctx, key, payload, tagListCacheTTL)
	}
	return names, nil
}
