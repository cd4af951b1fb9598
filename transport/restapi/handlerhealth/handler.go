package handlerhealth

import (
	"net/http"
	"time"

	"github.com/sailhq/sailpost/internal/docgen"
	"github.com/sailhq/sailpost/pkg/mailclient"
	"github.com/sailhq/sailpost/pkg/respbuilder"
	"github.com/sailhq/sailpost/pkg/validator"
)

type HandlerConfig struct {
	Assets docgen.AssetStore `validate:"required"`
	Mailer mailclient.Client `validate:"required"`
}

type Handler struct {
	Config HandlerConfig
}

func NewHandler(conf HandlerConfig) (*Handler, error) {
	err := validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	return &Handler{Config: conf}, nil
}

type AssetDiagnosis struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Size   int64  `json:"size_bytes"`
}

type HealthResp struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Email     string         `json:"email"`
	Template  AssetDiagnosis `json:"template"`
	Font      AssetDiagnosis `json:"font"`
}

// Health reports transport and renderer-asset readiness.
// Path     : GET /api/v1/health
// Response : HealthResp
func (h *Handler) Health() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		email := "Configured"
		if err := h.Config.Mailer.Verify(ctx); err != nil {
			email = "Not Configured"
		}

		respBody := HealthResp{
			Status:    "OK",
			Timestamp: time.Now().UTC(),
			Email:     email,
			Template:  h.diagnose(docgen.TemplateAsset),
			Font:      h.diagnose(docgen.FontAsset),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

func (h *Handler) diagnose(name string) AssetDiagnosis {
	size, ok := h.Config.Assets.Stat(name)
	return AssetDiagnosis{
		Path:   h.Config.Assets.Path(name),
		Exists: ok,
		Size:   size,
	}
}
