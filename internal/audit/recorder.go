package audit

import (
    "context"
    "log/slog"
    "time"

    "github.com/yourorg/aggregator-api/internal/events"
)

const writeTimeout = 10 * time.Second

// Recorder consumes search-completed events and writes them to the store.
// It runs off the request path; a failed write is logged and dropped.
type Recorder struct {
    Store  *Store
    Pub    events.Publisher
    Logger *slog.Logger
}

func (rec *Recorder) Run(ctx context.Context) {
    log := rec.Logger
    if log == nil {
        log = slog.Default()
    }
    sub := rec.Pub.SubscribeSearchCompleted()
    for {
        select {
        case <-ctx.Done():
            return
        case evt := <-sub:
            wctx, cancel := context.WithTimeout(ctx, writeTimeout)
            if err := rec.Store.Record(wctx, evt); err != nil {
                log.Warn("audit write failed", "err", err)
            }
            cancel()
        }
    }
}
