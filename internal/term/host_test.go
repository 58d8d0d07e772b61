package term

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ignis/internal/app"
	"ignis/internal/core"
	"ignis/internal/metrics"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func lowConfig() *app.Config {
	cfg := app.NewConfig()
	cfg.Preset = "low"
	cfg.Mode = "serial"
	cfg.TPS = 60
	return cfg
}

func TestPresentDrawsHalfBlocks(t *testing.T) {
	screen := newScreen(t, 2, 2)
	h := New(screen, lowConfig(), nil)

	frame := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	frame.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	frame.SetNRGBA(0, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	frame.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	frame.SetNRGBA(1, 1, color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 12})
	h.Present(frame)

	r, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, halfBlock, r)
	assert.Equal(t, tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(200, 100, 50)).
		Background(tcell.NewRGBColor(10, 20, 30)), style)

	r, _, style, _ = screen.GetContent(1, 0)
	assert.Equal(t, halfBlock, r)
	assert.Equal(t, tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(0, 0, 0)).
		Background(tcell.NewRGBColor(2, 2, 2)), style)

	r, _, _, _ = screen.GetContent(0, 1)
	assert.NotEqual(t, halfBlock, r, "status row is left alone")
}

func TestStatusLineShowsSummary(t *testing.T) {
	screen := newScreen(t, 120, 3)
	h := New(screen, lowConfig(), nil)

	s := metrics.Summarize(50, 30, metrics.DefaultInterval, core.Size{W: 320, H: 200})
	s.Mode, s.Policy = "Std", "serial"
	h.Publish(s)
	h.drawStatus()

	want := []rune("phys 100 fps")
	for i, r := range want {
		got, _, _, _ := screen.GetContent(i, 2)
		assert.Equal(t, r, got)
	}
}

func TestHandleKeyRestartsWithNewSettings(t *testing.T) {
	screen := newScreen(t, 40, 10)
	cfg := lowConfig()
	h := New(screen, cfg, nil)
	require.NoError(t, h.Restart())
	t.Cleanup(h.Close)
	first := h.Engine()

	quit, err := h.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	require.NoError(t, err)
	assert.False(t, quit)
	assert.True(t, cfg.Ultra)
	assert.NotSame(t, first, h.Engine())
	assert.True(t, h.Engine().Grid().Enhanced())

	_, err = h.HandleKey(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone))
	require.NoError(t, err)
	assert.Equal(t, core.PolicyParallel, h.Engine().Config().Policy)

	_, err = h.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	require.NoError(t, err)

	quit, err = h.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	require.NoError(t, err)
	assert.True(t, quit)

	quit, _ = h.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.True(t, quit)
}

func TestHandleKeyReportsBadConfig(t *testing.T) {
	screen := newScreen(t, 40, 10)
	cfg := lowConfig()
	cfg.Preset = "nope"
	h := New(screen, cfg, nil)
	_, err := h.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.ErrorIs(t, err, app.ErrUnknownPreset)
}

func TestRunRendersUntilQuit(t *testing.T) {
	screen := newScreen(t, 40, 12)
	h := New(screen, lowConfig(), nil)

	errc := make(chan error, 1)
	go func() { errc <- h.Run(context.Background()) }()

	time.Sleep(300 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
	assert.Nil(t, h.Engine())
	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, halfBlock, r)
}

func TestRunStopsOnContext(t *testing.T) {
	screen := newScreen(t, 20, 6)
	h := New(screen, lowConfig(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, h.Run(ctx))
	assert.Nil(t, h.Engine())
}
