package social

import (
	"context"

	"go.uber.org/zap"
)

// ============================================================================
// Graph View
// ============================================================================

// Graph returns the deduplicated node-and-edge projection of the current
// population. When a cache is configured the projection is served
// cache-aside: mutations invalidate it, reads rebuild it. Cache failures
// degrade to a direct store read.
func (s *UserService) Graph(ctx context.Context) (*Graph, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("graph cache read failed", zap.Error(err))
		} else if cached != nil {
			s.logger.Debug("graph served from cache",
				zap.Int("nodes", len(cached.Nodes)),
				zap.Int("edges", len(cached.Edges)),
			)
			return cached, nil
		}
	}

	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	g := ProjectGraph(all)

	if s.cache != nil {
		if err := s.cache.Set(ctx, g); err != nil {
			s.logger.Warn("graph cache write failed", zap.Error(err))
		}
	}

	s.logger.Debug("graph projected", zap.Int("nodes", len(g.Nodes)), zap.Int("edges", len(g.Edges)))
	return g, nil
}
