package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flavioheleno/ssd1306/internal/config"
	"github.com/golang/glog"
	"github.com/robfig/cron/v3"
)

// halter is a screen that can be detached.
type halter interface {
	screen
	Halt() error
}

// refresher pushes a source to the display. The mutex serializes every call
// into the display, which does no locking of its own.
type refresher struct {
	mu  sync.Mutex
	dev halter
	src config.SourceConfig
	now func() time.Time
}

func (r *refresher) refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := render(r.src, r.now())
	if err != nil {
		glog.Errorf("render %s source: %v", r.src.Kind, err)
		return
	}
	if err := u.apply(r.dev); err != nil {
		glog.Errorf("push %s source: %v", r.src.Kind, err)
	}
}

func (r *refresher) halt() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dev.Halt()
}

type glogPrintf struct{}

func (glogPrintf) Printf(format string, v ...any) {
	glog.InfoDepth(1, fmt.Sprintf(format, v...))
}

// run pushes cfg.Source immediately and then on every cfg.Refresh tick until
// ctx is done. The display is halted before returning.
func run(ctx context.Context, dev halter, cfg *config.Config) error {
	r := &refresher{dev: dev, src: cfg.Source, now: time.Now}
	logger := cron.PrintfLogger(glogPrintf{})
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(cfg.Refresh, r.refresh); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", cfg.Refresh, err)
	}

	r.refresh()
	c.Start()
	glog.Infof("serving %s source on %q", cfg.Source.Kind, cfg.Refresh)

	<-ctx.Done()
	glog.Info("signal received, shutting down")
	<-c.Stop().Done()
	return r.halt()
}
