package docgen

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/yusufsyaifudin/ylog"
)

const (
	// A4 in inches, the unit PagePrintToPDF expects.
	a4WidthInch  = 8.27
	a4HeightInch = 11.69

	defaultRichTimeout = 30 * time.Second
)

type RichRendererConfig struct {
	// Timeout bounds content load and PDF export, defaults to 30s.
	Timeout time.Duration
}

// RichRenderer produces the highest-fidelity artifact by printing the form
// markup through a headless browser. The browser is launched fresh per call
// and closed on every exit path, a failed close never masks the render error.
type RichRenderer struct {
	Config RichRendererConfig
}

var _ Strategy = (*RichRenderer)(nil)

func NewRichRenderer(cfg RichRendererConfig) *RichRenderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRichTimeout
	}

	return &RichRenderer{Config: cfg}
}

func (r *RichRenderer) Name() string { return "rich" }

func (r *RichRenderer) Render(ctx context.Context, data CanonicalData, regNo string) (out []byte, err error) {
	html, err := BuildFormHTML(data, regNo)
	if err != nil {
		return nil, fmt.Errorf("build form markup: %w", err)
	}

	chrome := launcher.New()
	controlURL, err := chrome.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch headless browser: %w", err)
	}

	defer chrome.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	err = browser.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect headless browser: %w", err)
	}

	defer func() {
		if _err := browser.Close(); _err != nil {
			ylog.Error(ctx, "close headless browser error", ylog.KV("error", _err))
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open browser page: %w", err)
	}

	page = page.Timeout(r.Config.Timeout)

	err = page.SetDocumentContent(html)
	if err != nil {
		return nil, fmt.Errorf("load form markup: %w", err)
	}

	err = page.WaitLoad()
	if err != nil {
		return nil, fmt.Errorf("wait page load: %w", err)
	}

	err = page.WaitStable(300 * time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("wait layout stabilization: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      f64(a4WidthInch),
		PaperHeight:     f64(a4HeightInch),
		MarginTop:       f64(0),
		MarginBottom:    f64(0),
		MarginLeft:      f64(0),
		MarginRight:     f64(0),
	})
	if err != nil {
		return nil, fmt.Errorf("export page pdf: %w", err)
	}

	out, err = io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read page pdf: %w", err)
	}

	return out, nil
}

func f64(v float64) *float64 {
	return &v
}
