package dialect

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avlink/mavdialect/log"
	"github.com/avlink/mavdialect/xmlsource"
)

// Compile is the top-level orchestrator (spec.md §4.6): it validates every
// source's include closure, compiles each source into its own Dialect, and
// merges the results into one codec table. Every run is tagged with a build
// id so log lines from a batch compile of many dialect files can be
// correlated back to the run that produced them.
func Compile(sources []*xmlsource.Source, opts ...Option) (*Dialect, error) {
	buildID := uuid.New().String()
	logger := log.Logger().With(zap.String("build_id", buildID))

	loaded, err := xmlsource.Load(sources)
	if err != nil {
		logger.Error("include closure validation failed", zap.Error(err))
		return nil, err
	}

	compiled := make([]*Dialect, 0, len(loaded))
	for _, src := range loaded {
		d, err := CompileOne(src, opts...)
		if err != nil {
			logger.Error("dialect compile failed", zap.String("source", src.Name), zap.Error(err))
			return nil, err
		}
		logger.Info("dialect compiled",
			zap.String("source", src.Name),
			zap.Int("messages", len(d.Messages)),
			zap.Int("enum_groups", len(d.Enums.Groups)),
		)
		compiled = append(compiled, d)
	}

	merged, err := Merge(compiled...)
	if err != nil {
		logger.Error("dialect merge failed", zap.Error(err))
		return nil, err
	}
	logger.Info("dialect merge complete",
		zap.Int("messages", len(merged.Messages)),
		zap.Int("enum_groups", len(merged.Enums.Groups)),
	)
	return merged, nil
}
