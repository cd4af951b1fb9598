package container

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sailhq/sailpost/internal/docgen"
	"github.com/sailhq/sailpost/internal/svc/applicantrepo"
	"github.com/sailhq/sailpost/internal/svc/applicantsvc"
	"github.com/sailhq/sailpost/internal/svc/dispatchsvc"
	"github.com/sailhq/sailpost/pkg/cache"
	"github.com/sailhq/sailpost/pkg/mailclient"
	"github.com/sailhq/sailpost/pkg/uid"
	"go.uber.org/multierr"
)

type Services interface {
	UIDGen() uid.UID
	Applicant() applicantsvc.Service
	Dispatch() dispatchsvc.Service
	Mailer() mailclient.Client
	Assets() docgen.AssetStore
}

type ServicesImpl struct {
	uidGen    uid.UID
	applicant applicantsvc.Service
	dispatch  dispatchsvc.Service
	mailer    mailclient.Client
	assets    docgen.AssetStore
	closers   []io.Closer
}

var _ Services = (*ServicesImpl)(nil)
var _ io.Closer = (*ServicesImpl)(nil)

func SetupServices(cfg Config, repos Repositories) (svc *ServicesImpl, err error) {
	if repos == nil {
		err = fmt.Errorf("nil repositories on services preparation")
		return
	}

	uidGen, err := uid.NewSonyflake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		err = fmt.Errorf("uid generator error: %w", err)
		return
	}

	svc = &ServicesImpl{
		uidGen: uidGen,
	}

	// ** Prepare applicant service at once
	applicantRepo, err := repos.ApplicantRepo(cfg.Services.Applicant.DBLabel)
	if err != nil {
		err = fmt.Errorf("services cannot get applicant repo: %w", err)
		return
	}

	applicantRepo, err = svc.wrapCached(applicantRepo, cfg.Services.Applicant.Cache)
	if err != nil {
		err = fmt.Errorf("services cannot prepare applicant cache: %w", err)
		return
	}

	applicantService, err := applicantsvc.New(applicantsvc.DefaultServiceConfig{
		UIDGen:        uidGen,
		ApplicantRepo: applicantRepo,
	})
	if err != nil {
		err = fmt.Errorf("services cannot prepare applicant service: %w", err)
		return
	}

	// ** Prepare document render pipeline
	assets, err := docgen.NewFSStore(cfg.Renderer.AssetDir)
	if err != nil {
		err = fmt.Errorf("services cannot prepare renderer assets: %w", err)
		return
	}

	templateRenderer, err := docgen.NewTemplateRenderer(docgen.TemplateRendererConfig{
		Assets: assets,
	})
	if err != nil {
		err = fmt.Errorf("services cannot prepare template renderer: %w", err)
		return
	}

	strategies := make([]docgen.Strategy, 0, 3)
	if !cfg.Renderer.DisableRich {
		strategies = append(strategies, docgen.NewRichRenderer(docgen.RichRendererConfig{
			Timeout: time.Duration(cfg.Renderer.RichTimeoutSec) * time.Second,
		}))
	}

	strategies = append(strategies,
		docgen.NewStructuredRenderer(docgen.StructuredRendererConfig{Assets: assets}),
		templateRenderer,
	)

	renderPipeline, err := docgen.NewPipeline(docgen.PipelineConfig{Strategies: strategies})
	if err != nil {
		err = fmt.Errorf("services cannot prepare render pipeline: %w", err)
		return
	}

	// ** Prepare mail transport
	mailer, err := mailclient.NewSmtp(&mailclient.SmtpMailerConfig{
		Credential: &mailclient.Credential{
			ServerHost: cfg.Mailer.Host,
			ServerPort: cfg.Mailer.Port,
			Username:   cfg.Mailer.Username,
			Password:   cfg.Mailer.Password,
			SenderName: cfg.Mailer.SenderName,
			SenderAddr: cfg.Mailer.SenderAddr,
		},
	})
	if err != nil {
		err = fmt.Errorf("services cannot prepare mailer: %w", err)
		return
	}

	svc.closers = append(svc.closers, mailer)

	// ** Prepare dispatch service
	dispatchService, err := dispatchsvc.New(dispatchsvc.DefaultServiceConfig{
		Mailer:     mailer,
		Renderer:   renderPipeline,
		Assets:     assets,
		BatchSize:  cfg.Services.Dispatch.BatchSize,
		BatchDelay: time.Duration(cfg.Services.Dispatch.BatchDelaySec) * time.Second,
	})
	if err != nil {
		err = fmt.Errorf("services cannot prepare dispatch service: %w", err)
		return
	}

	svc.applicant = applicantService
	svc.dispatch = dispatchService
	svc.mailer = mailer
	svc.assets = assets

	return svc, nil
}

// wrapCached layers a cache on top of the persistent applicant repo when
// configured. Cache mode "inmemory" needs no external dependency, "redis"
// pings the server once on startup.
func (s *ServicesImpl) wrapCached(persistent applicantrepo.Repo, conf ConfigCache) (applicantrepo.Repo, error) {
	mode := strings.TrimSpace(strings.ToLower(conf.Mode))

	var cacheStore cache.Cache
	switch mode {
	case "", "inmemory":
		var err error
		cacheStore, err = cache.NewInMemory()
		if err != nil {
			return nil, err
		}

	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     conf.Address,
			Password: conf.Password,
			DB:       conf.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, fmt.Errorf("redis ping error: %w", err)
		}

		s.closers = append(s.closers, redisClient)

		var err error
		cacheStore, err = cache.NewRedis(cache.RedisConfig{DB: redisClient})
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("not supported cache mode '%s'", conf.Mode)
	}

	expiry := time.Duration(conf.ExpirySec) * time.Second
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}

	return applicantrepo.NewCached(applicantrepo.CachedConfig{
		Persistent:     persistent,
		CacheExpiry:    expiry,
		CachePrefixKey: "applicant",
		Cache:          cacheStore,
	})
}

func (s *ServicesImpl) UIDGen() uid.UID {
	return s.uidGen
}

func (s *ServicesImpl) Applicant() applicantsvc.Service {
	return s.applicant
}

func (s *ServicesImpl) Dispatch() dispatchsvc.Service {
	return s.dispatch
}

func (s *ServicesImpl) Mailer() mailclient.Client {
	return s.mailer
}

func (s *ServicesImpl) Assets() docgen.AssetStore {
	return s.assets
}

// Close will close all dependencies.
func (s *ServicesImpl) Close() error {
	if s == nil {
		return nil
	}

	var err error
	for _, c := range s.closers {
		if c == nil {
			continue
		}

		if _err := c.Close(); _err != nil {
			err = multierr.Append(err, _err)
		}
	}

	return err
}
