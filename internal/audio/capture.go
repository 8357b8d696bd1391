package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/gen2brain/malgo"

	"pitchspace/internal/pitch"
)

// ErrDeviceStopped reports a capture device that stopped on its own,
// typically because it was unplugged.
var ErrDeviceStopped = errors.New("capture device stopped")

const (
	DefaultCaptureRate = 44100
	DefaultWindowSize  = 2048
)

// Capture streams mono float samples from the default microphone into a
// single-slot window. Start and Stop run on the tick thread; only the
// window and the failure slot are touched by the device thread.
type Capture struct {
	rate uint32
	win  *window
	log  *slog.Logger

	ctx *malgo.AllocatedContext
	dev *malgo.Device

	running atomic.Bool

	errMu sync.Mutex
	err   error

	scratch []float64 // device thread only
}

// NewCapture prepares a capture at sampleRate Hz delivering windows of
// size samples. size must be a power of two for the estimator to accept it.
func NewCapture(sampleRate uint32, size int, logger *slog.Logger) *Capture {
	if sampleRate == 0 {
		sampleRate = DefaultCaptureRate
	}
	if size <= 0 {
		size = DefaultWindowSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Capture{rate: sampleRate, win: newWindow(size), log: logger}
}

// StartCapture opens the device. On any failure every resource acquired so
// far is released before returning.
func (c *Capture) StartCapture() (err error) {
	if c.dev != nil {
		return nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		c.log.Debug("malgo", "msg", message)
	})
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	defer func() {
		if err != nil {
			_ = ctx.Uninit()
			ctx.Free()
		}
	}()

	config := malgo.DefaultDeviceConfig(malgo.Capture)
	config.Capture.Format = malgo.FormatF32
	config.Capture.Channels = 1
	config.SampleRate = c.rate
	config.Alsa.NoMMap = 1

	dev, err := malgo.InitDevice(ctx.Context, config, malgo.DeviceCallbacks{
		Data: c.onData,
		Stop: c.onStop,
	})
	if err != nil {
		return fmt.Errorf("init capture device: %w", err)
	}

	rate := dev.SampleRate()
	if rate == 0 {
		rate = c.rate
	}
	c.win.reset(float64(rate))
	c.setErr(nil)
	c.running.Store(true)

	if err = dev.Start(); err != nil {
		c.running.Store(false)
		dev.Uninit()
		return fmt.Errorf("start capture device: %w", err)
	}

	c.ctx, c.dev = ctx, dev
	c.log.Info("capture started", "sample_rate", rate, "window", len(c.win.ring))
	return nil
}

// StopCapture stops and releases the device. It is safe to call when
// capture never started.
func (c *Capture) StopCapture() error {
	if c.dev == nil {
		return nil
	}
	c.running.Store(false)

	var errs []error
	if err := c.dev.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop capture device: %w", err))
	}
	c.dev.Uninit()
	if err := c.ctx.Uninit(); err != nil {
		errs = append(errs, fmt.Errorf("release audio context: %w", err))
	}
	c.ctx.Free()
	c.dev, c.ctx = nil, nil

	c.log.Debug("capture stopped")
	return errors.Join(errs...)
}

// IsCapturing reports whether a device is held, including one that has
// failed and still needs StopCapture to be released.
func (c *Capture) IsCapturing() bool { return c.dev != nil }

// LatestBuffer never blocks.
func (c *Capture) LatestBuffer() *pitch.Buffer {
	return c.win.snapshot()
}

func (c *Capture) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Capture) setErr(err error) {
	c.errMu.Lock()
	c.err = err
	c.errMu.Unlock()
}

func (c *Capture) onData(_, input []byte, frameCount uint32) {
	if len(input) == 0 || !c.running.Load() {
		return
	}
	c.scratch = decodeF32(c.scratch, input)
	c.win.write(c.scratch)
}

func (c *Capture) onStop() {
	// A stop we did not ask for.
	if c.running.Swap(false) {
		c.setErr(ErrDeviceStopped)
	}
}

// decodeF32 converts little-endian float32 frames into dst.
func decodeF32(dst []float64, b []byte) []float64 {
	dst = core.EnsureLen(dst, len(b)/4)
	for i := range dst {
		dst[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
	return dst
}
