package audio

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const channelCount = 2

// SFX plays sound effects and reference tones. A nil *SFX is silent, so
// callers never need to check whether audio output came up.
type SFX struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	log    *slog.Logger

	mu    sync.Mutex
	cache map[Sound][]byte

	active atomic.Int32 // overlapping players
}

// maxVoices limits overlapping sounds; more than this clips the speakers.
const maxVoices = 4

// NewSFX opens the output device. The context becomes usable
// asynchronously; sounds requested before then are dropped.
func NewSFX(volume float64, logger *slog.Logger) (*SFX, error) {
	ctx, ready, err := oto.NewContext(PlaybackRate, channelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SFX{
		ctx:    ctx,
		ready:  ready,
		volume: math.Max(0, math.Min(1, volume)),
		log:    logger,
		cache:  make(map[Sound][]byte),
	}, nil
}

// Play starts kind in the background.
func (s *SFX) Play(kind Sound) {
	if !s.isReady() {
		return
	}
	s.mu.Lock()
	data, ok := s.cache[kind]
	s.mu.Unlock()
	if !ok {
		mono, err := Synthesize(kind)
		if err != nil {
			s.log.Warn("sound not generated", "sound", kind, "err", err)
			return
		}
		data = encodeStereo(mono)
		s.mu.Lock()
		s.cache[kind] = data
		s.mu.Unlock()
	}
	s.start(data)
}

// PlayTone plays a sine at hz for seconds in the background.
func (s *SFX) PlayTone(hz, seconds float64) {
	if !s.isReady() {
		return
	}
	mono, err := Tone(hz, seconds)
	if err != nil {
		s.log.Warn("tone not generated", "hz", hz, "err", err)
		return
	}
	s.start(encodeStereo(mono))
}

func (s *SFX) isReady() bool {
	if s == nil {
		return false
	}
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

func (s *SFX) start(data []byte) {
	if s.active.Add(1) > maxVoices {
		s.active.Add(-1)
		return
	}
	go func() {
		defer s.active.Add(-1)
		player := s.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(s.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.log.Debug("close player", "err", err)
		}
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// encodeStereo writes mono samples as interleaved float32 LE stereo.
func encodeStereo(mono []float64) []byte {
	buf := make([]byte, len(mono)*8)
	for i, sample := range mono {
		putStereoF32(buf, i, sample)
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}
