// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent assembles answers to legal queries and attaches citation
// alerts produced by the verifier.
package agent

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/juridico-rag/internal/citation"
	"github.com/pdiddy/juridico-rag/pkg/types"
)

// DefaultTemplate is the placeholder answer text. A generation backend
// would replace it.
const DefaultTemplate = "Resumo jurídico para: %s"

// Recorder receives every assembled response. The audit store implements it.
type Recorder interface {
	RecordResponse(ctx context.Context, resp types.Response) error
}

// Agent builds Response records. It is safe for concurrent use provided the
// attached Recorder is.
type Agent struct {
	verifier *citation.Verifier
	template string
	recorder Recorder
	logger   *zap.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithVerifier sets the citation verifier. The default is
// citation.NewVerifier(nil).
func WithVerifier(v *citation.Verifier) Option {
	return func(a *Agent) { a.verifier = v }
}

// CheckTemplate reports whether tmpl can render an answer: it must contain
// exactly one %s and no other verbs.
func CheckTemplate(tmpl string) error {
	if tmpl == "" {
		return nil
	}
	if strings.Count(tmpl, "%s") != 1 || strings.Count(tmpl, "%") != strings.Count(tmpl, "%%")*2+1 {
		return fmt.Errorf("answer template %q must contain exactly one %%s", tmpl)
	}
	return nil
}

// WithTemplate sets the answer template; it must hold one %s for the query.
// An empty template, or one rejected by CheckTemplate, keeps DefaultTemplate.
func WithTemplate(tmpl string) Option {
	return func(a *Agent) {
		if tmpl != "" {
			a.template = tmpl
		}
	}
}

// WithRecorder attaches a sink for assembled responses.
func WithRecorder(r Recorder) Option {
	return func(a *Agent) { a.recorder = r }
}

// WithLogger sets the logger used for recorder failures.
func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an Agent configured by opts. An invalid template is logged
// and replaced by DefaultTemplate.
func New(opts ...Option) *Agent {
	a := &Agent{
		template: DefaultTemplate,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.verifier == nil {
		a.verifier = citation.NewVerifier(nil)
	}
	if err := CheckTemplate(a.template); err != nil {
		a.logger.Warn("invalid answer template, using default",
			zap.String("template", a.template),
			zap.Error(err),
		)
		a.template = DefaultTemplate
	}
	return a
}

// GenerateResponse answers query grounded on sources. The sources slice is
// copied, so the caller may reuse it. Alerts is set only when the answer
// cites something outside sources.
func (a *Agent) GenerateResponse(ctx context.Context, query string, sources []string) types.Response {
	resp := a.assemble(query, slices.Clone(sources))
	if alerts := a.verifier.Validate(resp.Answer, resp.Sources); len(alerts) > 0 {
		resp.Alerts = alerts
	}
	a.record(ctx, resp)
	return resp
}

// GenerateResponseSeq is GenerateResponse for a single-pass sequence. The
// sequence is consumed exactly once, before the answer is validated.
func (a *Agent) GenerateResponseSeq(ctx context.Context, query string, sources iter.Seq[string]) types.Response {
	var list []string
	if sources != nil {
		list = slices.Collect(sources)
	}
	return a.GenerateResponse(ctx, query, list)
}

func (a *Agent) assemble(query string, sources []string) types.Response {
	if sources == nil {
		sources = []string{}
	}
	return types.Response{
		Query:   query,
		Answer:  fmt.Sprintf(a.template, query),
		Sources: sources,
	}
}

func (a *Agent) record(ctx context.Context, resp types.Response) {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.RecordResponse(ctx, resp); err != nil {
		a.logger.Warn("recording response failed",
			zap.String("consulta", resp.Query),
			zap.Error(err),
		)
	}
}
