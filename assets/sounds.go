// Package assets synthesizes the desktop host's sound cues.
package assets

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/charcontroller/common"
	"github.com/milk9111/charcontroller/controller"
)

const SampleRate = 44100

type tone struct {
	event controller.Events
	freq  float64
	dur   time.Duration
}

var tones = []tone{
	{controller.EventJump, 660, 40 * time.Millisecond},
	{controller.EventDoubleJump, 880, 40 * time.Millisecond},
	{controller.EventQueuedJump, 990, 40 * time.Millisecond},
	{controller.EventWallJump, 770, 50 * time.Millisecond},
	{controller.EventDash, 220, 80 * time.Millisecond},
	{controller.EventLand, 110, 30 * time.Millisecond},
}

// Cues holds one player per event that has a tone.
type Cues struct {
	players map[controller.Events]*audio.Player
	Volume  float64
}

func NewCues() *Cues {
	ctx := audio.NewContext(SampleRate)
	c := &Cues{
		players: make(map[controller.Events]*audio.Player, len(tones)),
		Volume:  0.4,
	}
	for _, t := range tones {
		c.players[t.event] = ctx.NewPlayerFromBytes(SineTone(t.freq, t.dur))
	}
	return c
}

// Play starts the cue of every event in ev, restarting cues still playing.
func (c *Cues) Play(ev controller.Events) {
	if c == nil || ev == 0 {
		return
	}
	for _, t := range tones {
		if !ev.Has(t.event) {
			continue
		}
		player := c.players[t.event]
		if player == nil {
			continue
		}
		player.SetVolume(c.Volume)
		_ = player.Rewind()
		player.Play()
	}
}

// SineTone renders a tone as 16-bit little-endian stereo PCM with a linear
// fade-out so it does not click.
func SineTone(freq float64, dur time.Duration) []byte {
	n := int(dur.Seconds() * SampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		gain := common.Lerp(1, 0, float64(i)/float64(n))
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/SampleRate) * gain * math.MaxInt16 * 0.5)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
