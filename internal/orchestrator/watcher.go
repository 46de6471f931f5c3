package orchestrator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/parametriclabs/swmcp/internal/engine"
)

// dialogWatcher polls for a blocking modal prompt while a dialog-prone
// engine call is in flight. It dismisses at most one prompt, then exits;
// it also exits on timeout or cancellation. stop always joins the
// goroutine, so no probe outlives its command.
type dialogWatcher struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *Session) watchDialogs(ctx context.Context, doc engine.Document) *dialogWatcher {
	ctx, cancel := context.WithTimeout(ctx, s.dialogTimeout)
	w := &dialogWatcher{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		ticker := time.NewTicker(s.dialogPoll)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !doc.DialogVisible() {
					continue
				}
				s.log.Info("dismissing modal prompt")
				if err := doc.DismissDialog(); err != nil {
					s.log.Warn("dismiss failed", zap.Error(err))
				}
				return
			}
		}
	}()
	return w
}

// stop cancels the watcher and waits for it to finish.
func (w *dialogWatcher) stop() {
	w.cancel()
	<-w.done
}
