package session

import (
	"context"
	"fmt"
	"net"

	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Run drives the app's tick loop until it finishes, fails or ctx is
// cancelled. The health check server, when enabled, lives exactly as long as
// the loop.
func (s *Session) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, s.logger)
	s.logger.Debug("Session.Run method started.")
	defer s.shutdownTracing(ctx)

	var ln net.Listener
	if s.config.HealthcheckPort > 0 {
		var err error
		ln, err = net.Listen("tcp", fmt.Sprintf(":%d", s.config.HealthcheckPort))
		if err != nil {
			return fmt.Errorf("failed to start health check server: %w", err)
		}
	} else {
		s.logger.Debug("Health check server not started: disabled")
	}

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(loopCtx)

	g.Go(func() error {
		defer stop()
		s.logger.Info("🚀 Starting tick loop...")
		if err := s.app.Run(gctx, s.opts); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		s.logger.Info("🏁 Tick loop finished.", "ticks", s.app.Ticks())
		return nil
	})

	if ln != nil {
		g.Go(func() error { return s.serveHealth(gctx, ln) })
	}

	err := g.Wait()
	s.logger.Debug("Session.Run method finished.", "error", err)
	return err
}
