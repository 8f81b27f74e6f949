package facetview

import (
	"context"

	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/searchclient"
	"github.com/kailas-cloud/facetview/internal/theme"
	"github.com/kailas-cloud/facetview/internal/usecase/orchestrator"
)

// uiHandle is the capability surface handed to theme code. Filtering goes
// through the orchestrator so the held page stays consistent with what the
// theme triggered.
type uiHandle struct {
	ui *UI
}

var _ theme.Handle = (*uiHandle)(nil)

func (h *uiHandle) Field(r domain.Result, logical string) string {
	return h.ui.extractor.Field(r, logical)
}

func (h *uiHandle) FormatDate(r domain.Result) string {
	return h.ui.extractor.FormatDate(r)
}

func (h *uiHandle) Filter(ctx context.Context, facet string, values []string) (*domain.Page, error) {
	return h.ui.orch.Filter(ctx, orchestrator.FilterRequest{Facet: facet, Values: values})
}

func (h *uiHandle) Config() *config.Config { return h.ui.cfg }

func (h *uiHandle) Client() searchclient.Client { return h.ui.client }
