package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/charcontroller/controller"
)

const sampleRate = beep.SampleRate(44100)

type cue struct {
	event controller.Events
	freq  float64
	dur   time.Duration
}

var cues = []cue{
	{controller.EventJump, 660, 40 * time.Millisecond},
	{controller.EventDoubleJump, 880, 40 * time.Millisecond},
	{controller.EventQueuedJump, 990, 40 * time.Millisecond},
	{controller.EventWallJump, 770, 50 * time.Millisecond},
	{controller.EventDash, 220, 80 * time.Millisecond},
	{controller.EventLand, 110, 30 * time.Millisecond},
}

type sounds struct {
	enabled bool
}

// newSounds opens the speaker. Without audio the host still runs silently.
func newSounds(mute bool) *sounds {
	if mute {
		return &sounds{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio: init failed: %v", err)
		return &sounds{}
	}
	return &sounds{enabled: true}
}

// play sounds the first cue matching ev.
func (s *sounds) play(ev controller.Events) {
	if !s.enabled || ev == 0 {
		return
	}
	for _, c := range cues {
		if !ev.Has(c.event) {
			continue
		}
		sine, err := generators.SineTone(sampleRate, c.freq)
		if err != nil {
			log.Printf("audio: %v", err)
			return
		}
		speaker.Play(beep.Take(sampleRate.N(c.dur), sine))
		return
	}
}

func (s *sounds) close() {
	if s.enabled {
		speaker.Close()
	}
}
