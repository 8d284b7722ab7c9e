// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sciurus-wm/corium/cast"
	"github.com/sciurus-wm/corium/clock"
	"github.com/sciurus-wm/corium/config"
	"github.com/sciurus-wm/corium/geom"
	"github.com/sciurus-wm/corium/ipc"
	"github.com/sciurus-wm/corium/loop"
	"github.com/sciurus-wm/corium/wm"
)

// runCompositor wires the layout engine, the IPC surface, and the
// event loop's timer-driven tick together and blocks until ctx is
// canceled or a termination signal arrives.
func runCompositor(ctx context.Context, cfg config.Config, log zerolog.Logger, l *loop.Loop) error {
	c := clock.New()
	layout := wm.NewLayout(c)
	out := layout.AddOutput(1, outputArea(cfg), 1, cfg.Layout.Gaps)

	casts := cast.NewRegistry()
	screencast := newScreencastSession(casts, out)
	if err := screencast.negotiate(int(out.Area.Dx()), int(out.Area.Dy()), 60000); err != nil {
		log.Warn().Err(err).Msg("screencast stub negotiation failed")
	}

	windows := &windowSource{layout: layout}
	monitor := ipc.NewKeyboardMonitor()
	servers := ipc.StartServers(windows, monitor, func(iface string, err error) {
		log.Warn().Str("interface", iface).Err(err).Msg("failed to start IPC interface")
	})
	defer servers.Close()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	timers := loop.NewTimers(c)
	const frameInterval = 16 * time.Millisecond
	var tick func()
	tick = func() {
		screencast.renderFrame(c.Now(), log)
		timers.After(frameInterval, tick)
	}
	tick()

	l.Spawn(func() {
		log.Info().Msg("compositor started")
	})

	for sigCtx.Err() == nil {
		remaining := timers.Poll()
		if !l.RunOnce(loop.NextTimeoutMS(remaining)) {
			break
		}
	}

	log.Info().Msg("compositor shutting down")
	return nil
}

// outputArea returns a placeholder 1920x1080 output rectangle until a
// real backend supplies monitor geometry over mutter_display_config.
func outputArea(cfg config.Config) geom.Rect {
	return geom.RectWH(1920, 1080)
}

type windowSource struct {
	layout *wm.Layout
}

func (w *windowSource) Windows() map[uint64]ipc.WindowProperties {
	out := make(map[uint64]ipc.WindowProperties)
	for _, output := range w.layout.Outputs {
		ws := output.ActiveWorkspace()
		if ws == nil {
			continue
		}
		for _, id := range ws.Windows() {
			out[uint64(id)] = ipc.WindowProperties{Title: "", AppID: ""}
		}
	}
	return out
}
