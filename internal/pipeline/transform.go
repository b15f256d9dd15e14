package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/storm-hyetograph/internal/domain"
)

// BlockTransformer implements Transformer with the alternating block method.
type BlockTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a BlockTransformer.
func NewTransformer(logger *slog.Logger) *BlockTransformer {
	return &BlockTransformer{logger: logger}
}

func (t *BlockTransformer) Transform(ctx context.Context, params domain.RainfallParams, pattern domain.DistributionPattern) (domain.Hyetograph, error) {
	if err := ctx.Err(); err != nil {
		return domain.Hyetograph{}, err
	}

	h := domain.Build(params, pattern)
	t.logger.Debug("blocks arranged",
		"pattern", pattern.String(),
		"steps", len(h.Entries),
		"step_minutes", params.T,
	)
	return h, nil
}
