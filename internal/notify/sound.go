package notify

import (
	"encoding/base64"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/gardenstock/stockwatch/internal/logger"
)

// Player plays the alert sound cue.
type Player interface {
	Play()
}

// alertCueBase64 is a short WAV chime, embedded so the cue needs no
// asset files on disk.
const alertCueBase64 = "UklGRnoGAABXQVZFZm10IBAAAAABAAEAQB8AAEAfAAABAAgAZGF0YQoGAACBhYqFbF1fdJivrJBhNjVgodDbq2EcBj+a2/LDciUFLIHO8tiJNwgZaLvt559NEAxQp+PwtmMcBjiR1/LMeSwFJHfH8N2QQAoUXrTp66hVFApGn+DyvmwhBSuBzvLZiTYIG2m98OScTgwOUarm7blmGgU7k9n1unEiBC13yO/eizEIHWq+8+OWTw=="

// players are audio commands probed in order; the first one on PATH
// wins.
var players = []string{"paplay", "aplay", "afplay"}

// SoundPlayer plays the cue through whichever system audio command is
// available. Playback failures are swallowed: no audio is silent
// feature degradation, never an error.
type SoundPlayer struct {
	logger logger.Logger

	once     sync.Once
	playPath string
	cuePath  string
}

func NewSoundPlayer(log logger.Logger) *SoundPlayer {
	return &SoundPlayer{logger: log}
}

// Play fires the cue asynchronously.
func (p *SoundPlayer) Play() {
	p.once.Do(p.setup)
	if p.playPath == "" || p.cuePath == "" {
		return
	}

	go func() {
		if err := exec.Command(p.playPath, p.cuePath).Run(); err != nil {
			p.logger.Debug("sound cue playback failed", logger.Error(err))
		}
	}()
}

// setup decodes the cue to a temp file and probes for a player binary.
func (p *SoundPlayer) setup() {
	for _, name := range players {
		if path, err := exec.LookPath(name); err == nil {
			p.playPath = path
			break
		}
	}
	if p.playPath == "" {
		p.logger.Debug("no audio player found, sound alerts disabled")
		return
	}

	cue, err := base64.StdEncoding.DecodeString(alertCueBase64)
	if err != nil {
		p.logger.Debug("failed to decode sound cue", logger.Error(err))
		return
	}

	path := filepath.Join(os.TempDir(), "stockwatch-alert.wav")
	if err := os.WriteFile(path, cue, 0o644); err != nil {
		p.logger.Debug("failed to write sound cue", logger.Error(err))
		return
	}
	p.cuePath = path
}
