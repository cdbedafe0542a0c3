// Package engine runs the correction pipeline: protect, local rewrites,
// chunk, per-chunk grammar check and patch, reassemble, restore, brand
// normalization. Chunks are processed strictly in order; a failed service
// call drops that chunk's corrections, never the chunk or the run.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"spellfix/internal/chunk"
	"spellfix/internal/config"
	"spellfix/internal/languagetool"
	"spellfix/internal/logging"
	"spellfix/internal/patch"
	"spellfix/internal/protect"
	"spellfix/internal/rewrite"
)

// Checker is the external grammar-check boundary. It is the pipeline's only
// failure-tolerant stage.
type Checker interface {
	Check(ctx context.Context, text string) ([]languagetool.Match, error)
}

type Engine struct {
	cfg       config.Config
	checker   Checker
	protector *protect.Protector
	logger    *slog.Logger
}

// New builds an engine. A nil checker runs the local stages only.
func New(cfg config.Config, checker Checker, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{
		cfg:       cfg,
		checker:   checker,
		protector: protect.NewProtector(cfg.Brands),
		logger:    logger.With("component", "engine"),
	}
}

// Run corrects raw text. Whitespace-only input yields empty output. Run
// never fails: per-chunk service errors are logged and the chunk passes
// through unmodified.
func (e *Engine) Run(ctx context.Context, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	prot := e.protector.Protect(raw)
	e.logger.Debug("engine.protected", "spans", prot.Len())

	text := rewrite.SplitDotJoinedWords(prot.Text)
	text = rewrite.CleanSpacing(text)
	text = rewrite.Capitalize(text)

	chunks := []string{text}
	if utf8.RuneCountInString(text) > e.cfg.MaxChunkChars {
		chunks = chunk.Split(text, e.cfg.MaxChunkChars)
		e.logger.Debug("engine.chunked", "chunks", len(chunks))
	}

	var out strings.Builder
	for i, ch := range chunks {
		out.WriteString(e.processChunk(ctx, i, ch))
	}

	result := prot.Restore(out.String())
	if n := protect.CountUnresolved(result); n > 0 {
		e.logger.Error("engine.unresolved_placeholders", "count", n)
	}
	return protect.NormalizeBrands(result, e.cfg.Brands)
}

func (e *Engine) processChunk(ctx context.Context, index int, text string) string {
	if e.checker == nil {
		return text
	}
	matches, err := e.checker.Check(ctx, text)
	if err != nil {
		e.logger.Warn("engine.check_failed",
			"chunk", index,
			"error", err.Error(),
			"text", logging.TruncateText(text))
		return text
	}
	patched, applied := patch.Apply(text, matches, e.logger)
	if applied > 0 {
		e.logger.Debug("engine.chunk_patched", "chunk", index, "applied", applied)
	}
	return patched
}
