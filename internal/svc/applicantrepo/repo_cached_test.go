package applicantrepo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sailhq/sailpost/pkg/cache"
)

type fakeRepo struct {
	Repo
	applicants map[string]Applicant
	getCalls   int
}

func (f *fakeRepo) Create(ctx context.Context, in InputCreate) (out OutCreate, err error) {
	if _, exists := f.applicants[in.Applicant.Email]; exists {
		err = fmt.Errorf("duplicate email")
		return
	}

	f.applicants[in.Applicant.Email] = in.Applicant
	out = OutCreate{Applicant: in.Applicant}
	return
}

func (f *fakeRepo) GetByEmail(ctx context.Context, in InputGetByEmail) (out OutGetByEmail, err error) {
	f.getCalls++
	applicant, ok := f.applicants[in.Email]
	if !ok {
		err = fmt.Errorf("not found")
		return
	}

	out = OutGetByEmail{Applicant: applicant}
	return
}

func newCachedForTest(t *testing.T) (*CachedRepo, *fakeRepo) {
	t.Helper()

	persistent := &fakeRepo{applicants: map[string]Applicant{}}
	inMem, err := cache.NewInMemory()
	assert.NoError(t, err)

	cached, err := NewCached(CachedConfig{
		Persistent:     persistent,
		CacheExpiry:    time.Minute,
		CachePrefixKey: "applicant",
		Cache:          inMem,
	})
	assert.NoError(t, err)
	return cached, persistent
}

func TestNewCached(t *testing.T) {
	t.Run("missing deps", func(t *testing.T) {
		cached, err := NewCached(CachedConfig{})
		assert.Nil(t, cached)
		assert.Error(t, err)
	})

	t.Run("valid config", func(t *testing.T) {
		inMem, err := cache.NewInMemory()
		assert.NoError(t, err)

		var cached *CachedRepo
		assert.NotPanics(t, func() {
			cached, err = NewCached(CachedConfig{
				Persistent:     &fakeRepo{applicants: map[string]Applicant{}},
				CacheExpiry:    time.Minute,
				CachePrefixKey: "applicant",
				Cache:          inMem,
			})
		})
		assert.NoError(t, err)
		assert.NotNil(t, cached)
	})

	t.Run("prefix key must be alphanumeric", func(t *testing.T) {
		inMem, err := cache.NewInMemory()
		assert.NoError(t, err)

		cached, err := NewCached(CachedConfig{
			Persistent:     &fakeRepo{applicants: map[string]Applicant{}},
			CacheExpiry:    time.Minute,
			CachePrefixKey: "applicant:",
			Cache:          inMem,
		})
		assert.Nil(t, cached)
		assert.Error(t, err)
	})
}

func TestCachedGetByEmail(t *testing.T) {
	ctx := context.TODO()
	cached, persistent := newCachedForTest(t)

	applicant := Applicant{
		ID:        1,
		Email:     "asha@example.com",
		Name:      "Asha Rawat",
		CPF:       "CPF123",
		Status:    StatusPending,
		CreatedAt: 1,
		UpdatedAt: 1,
	}

	_, err := cached.Create(ctx, InputCreate{Applicant: applicant})
	assert.NoError(t, err)

	// first read may hit the store, second read must come from cache
	out, err := cached.GetByEmail(ctx, InputGetByEmail{Email: "asha@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "Asha Rawat", out.Applicant.Name)

	callsBefore := persistent.getCalls
	out, err = cached.GetByEmail(ctx, InputGetByEmail{Email: "asha@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "Asha Rawat", out.Applicant.Name)
	assert.Equal(t, callsBefore, persistent.getCalls)
}

func TestCachedCreateDuplicate(t *testing.T) {
	ctx := context.TODO()
	cached, _ := newCachedForTest(t)

	applicant := Applicant{
		ID:        1,
		Email:     "asha@example.com",
		Name:      "Asha Rawat",
		CPF:       "CPF123",
		Status:    StatusPending,
		CreatedAt: 1,
		UpdatedAt: 1,
	}

	_, err := cached.Create(ctx, InputCreate{Applicant: applicant})
	assert.NoError(t, err)

	_, err = cached.Create(ctx, InputCreate{Applicant: applicant})
	assert.Error(t, err)
}
