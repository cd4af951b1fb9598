package docgen

import (
	"context"
	"fmt"
)

type TemplateRendererConfig struct {
	Assets AssetStore `validate:"required"`
}

// TemplateRenderer returns the blank template document untouched. It binds
// no data and only fails when the asset is missing, making it the terminal
// "give the user something" fallback.
type TemplateRenderer struct {
	Config TemplateRendererConfig
}

var _ Strategy = (*TemplateRenderer)(nil)

func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.Assets == nil {
		return nil, fmt.Errorf("template renderer needs an asset store")
	}

	return &TemplateRenderer{Config: cfg}, nil
}

func (t *TemplateRenderer) Name() string { return "template" }

func (t *TemplateRenderer) Render(ctx context.Context, data CanonicalData, regNo string) ([]byte, error) {
	if !t.Config.Assets.Exists(TemplateAsset) {
		return nil, fmt.Errorf("blank template %s is absent", TemplateAsset)
	}

	return t.Config.Assets.ReadBytes(TemplateAsset)
}
