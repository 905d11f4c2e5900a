package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"recipehub/internal/config"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"
)

var ErrShortLinkNotFound = errors.New("short link not found")

const shortLinkKeyPrefix = "shortlink:"

type ShortLinkService interface {
	// GetOrCreate returns the public short URL for a recipe, minting the
	// token on first request.
	GetOrCreate(ctx context.Context, recipeID int64) (string, error)
	// Resolve maps a token back to the canonical recipe URL.
	Resolve(ctx context.Context, token string) (string, error)
}

type shortLinkService struct {
	repo       repository.ShortLinkRepository
	recipeRepo *repository.RecipeRepo
	cache      *redis.Client
	baseURL    string
	cacheTTL   time.Duration
}

// NewShortLinkService wires the short-link store. cache may be nil, in which
// case every resolve hits the database.
func NewShortLinkService(
	repo repository.ShortLinkRepository,
	recipeRepo *repository.RecipeRepo,
	cache *redis.Client,
	cfg *config.Config,
) ShortLinkService {
	return &shortLinkService{
		repo:       repo,
		recipeRepo: recipeRepo,
		cache:      cache,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cacheTTL:   time.Duration(cfg.CacheTTL) * time.Second,
	}
}

func (s *shortLinkService) GetOrCreate(ctx context.Context, recipeID int64) (string, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
		if repository.IsNotFound(err) {
			return "", ErrRecipeNotFound
		}
		return "", err
	}

	link, err := s.repo.FindByRecipe(ctx, recipeID)
	if err == nil {
		return s.shortURL(link.Token), nil
	}
	if !repository.IsNotFound(err) {
		return "", err
	}

	link = &models.ShortLink{
		Token:    newToken(),
		RecipeID: recipeID,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		// concurrent request for the same recipe may have won the insert
		if repository.IsDuplicate(err) {
			if existing, findErr := s.repo.FindByRecipe(ctx, recipeID); findErr == nil {
				return s.shortURL(existing.Token), nil
			}
		}
		return "", err
	}

	return s.shortURL(link.Token), nil
}

func (s *shortLinkService) Resolve(ctx context.Context, token string) (string, error) {
	if s.cache != nil {
		if target, err := s.cache.Get(ctx, shortLinkKeyPrefix+token).Result(); err == nil {
			return target, nil
		}
	}

	link, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrShortLinkNotFound
		}
		return "", err
	}

	target := s.canonicalURL(link.RecipeID)
	if s.cache != nil {
		// best effort, resolution works without the cache
		s.cache.Set(ctx, shortLinkKeyPrefix+token, target, s.cacheTTL)
	}
	return target, nil
}

func (s *shortLinkService) shortURL(token string) string {
	return fmt.Sprintf("%s/s/%s", s.baseURL, token)
}

func (s *shortLinkService) canonicalURL(recipeID int64) string {
	return fmt.Sprintf("%s/recipes/%d", s.baseURL, recipeID)
}

// newToken derives an 8-character redirect token from a fresh UUID.
func newToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
