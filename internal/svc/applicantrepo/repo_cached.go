package applicantrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yusufsyaifudin/ylog"

	"github.com/sailhq/sailpost/pkg/cache"
	"github.com/sailhq/sailpost/pkg/validator"
)

type CachedConfig struct {
	Persistent     Repo          `validate:"required"`
	CacheExpiry    time.Duration `validate:"required"`
	CachePrefixKey string        `validate:"required,alphanum"`
	Cache          cache.Cache   `validate:"required"`
}

// CachedRepo caches single-record lookups by email. The cache is an
// optimization only, cache errors are logged and discarded.
type CachedRepo struct {
	Config CachedConfig
}

var _ Repo = (*CachedRepo)(nil)

func NewCached(cfg CachedConfig) (*CachedRepo, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, err
	}

	return &CachedRepo{
		Config: cfg,
	}, nil
}

func (c *CachedRepo) Create(ctx context.Context, in InputCreate) (out OutCreate, err error) {
	existing, err := c.getByEmail(ctx, in.Applicant.Email)
	if err != nil {
		// log and then discard error
		ylog.Error(ctx, "get applicant from cache error, continuing to try to insert", ylog.KV("error", err))
		err = nil
	}

	if strings.EqualFold(existing.Email, in.Applicant.Email) && existing.Email != "" {
		err = fmt.Errorf("applicant with email '%s' already exist", existing.Email)
		return
	}

	out, err = c.Config.Persistent.Create(ctx, in)
	if err != nil {
		err = fmt.Errorf("persist applicant to db error: %w", err)
		return
	}

	c.setByEmail(ctx, out.Applicant)
	return
}

func (c *CachedRepo) GetByEmail(ctx context.Context, in InputGetByEmail) (out OutGetByEmail, err error) {
	// Get from cache first
	applicant, err := c.getByEmail(ctx, in.Email)
	if err == nil && strings.EqualFold(applicant.Email, in.Email) {
		out = OutGetByEmail{
			Applicant: applicant,
		}
		return
	}

	if err != nil {
		ylog.Error(ctx, fmt.Sprintf("applicant email %s error get from cache", in.Email), ylog.KV("error", err))
		err = nil
	}

	out, err = c.Config.Persistent.GetByEmail(ctx, in)
	if err != nil {
		err = fmt.Errorf("persistence storage fetch error: %w", err)
		return
	}

	c.setByEmail(ctx, out.Applicant)
	return
}

// GetByID is not cached, id lookups always hit the persistent store.
func (c *CachedRepo) GetByID(ctx context.Context, in InputGetByID) (out OutGetByID, err error) {
	return c.Config.Persistent.GetByID(ctx, in)
}

// List of cached applicants now will not use cache. It is hard to maintain a list in cache.
func (c *CachedRepo) List(ctx context.Context, in InputList) (out OutList, err error) {
	return c.Config.Persistent.List(ctx, in)
}

func (c *CachedRepo) UpdateStatus(ctx context.Context, in InputUpdateStatus) (out OutUpdateStatus, err error) {
	out, err = c.Config.Persistent.UpdateStatus(ctx, in)
	if err != nil {
		return
	}

	c.setByEmail(ctx, out.Applicant)
	return
}

func (c *CachedRepo) DelByID(ctx context.Context, in InputDelByID) (out OutDelByID, err error) {
	existing, err := c.Config.Persistent.GetByID(ctx, InputGetByID{ID: in.ID})
	if err != nil {
		err = nil // missing record is handled by the delete below
	}

	out, err = c.Config.Persistent.DelByID(ctx, in)
	if err != nil {
		return
	}

	if existing.Applicant.Email != "" {
		if _err := c.delByEmail(ctx, existing.Applicant.Email); _err != nil {
			ylog.Error(ctx, "evict deleted applicant from cache error", ylog.KV("error", _err))
		}
	}
	return
}

// -- cache

func (c *CachedRepo) genCacheKey(email string) string {
	return fmt.Sprintf("%s:%s", c.Config.CachePrefixKey, strings.ToLower(email))
}

func (c *CachedRepo) getByEmail(ctx context.Context, email string) (Applicant, error) {
	var applicant Applicant
	err := c.Config.Cache.GetAs(ctx, c.genCacheKey(email), &applicant)
	if err != nil {
		return Applicant{}, err
	}

	ylog.Debug(ctx, fmt.Sprintf("get applicant %s from cache", email))
	return applicant, nil
}

func (c *CachedRepo) setByEmail(ctx context.Context, applicant Applicant) {
	err := c.Config.Cache.SetExp(ctx, c.genCacheKey(applicant.Email), applicant, c.Config.CacheExpiry)
	if err != nil {
		ylog.Error(ctx, fmt.Sprintf("cannot save cache applicant %s", applicant.Email), ylog.KV("error", err))
		return
	}

	ylog.Debug(ctx, fmt.Sprintf("caching applicant %s", applicant.Email))
}

func (c *CachedRepo) delByEmail(ctx context.Context, email string) error {
	return c.Config.Cache.Delete(ctx, c.genCacheKey(email))
}
