// Package notify turns committed stock snapshots into at most one
// debounced desktop alert per batch window, covering every wishlist
// item currently in stock.
package notify

import (
	"os/exec"
	"sync"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/logger"
)

// Notifier dispatches one desktop alert. Implementations must degrade
// silently when the platform capability is missing.
type Notifier interface {
	Notify(title, body string)
}

// DesktopNotifier shells out to notify-send when present. A host
// without it is a valid, handled case: permission reads as denied and
// Notify is a no-op.
type DesktopNotifier struct {
	logger logger.Logger

	mu         sync.Mutex
	sendPath   string
	permission domain.Permission
}

// NewDesktopNotifier probes for the notify-send binary.
func NewDesktopNotifier(log logger.Logger) *DesktopNotifier {
	n := &DesktopNotifier{logger: log, permission: domain.PermissionDenied}

	path, err := exec.LookPath("notify-send")
	if err != nil {
		log.Info("notify-send not found, desktop alerts disabled")
		return n
	}
	n.sendPath = path
	n.permission = domain.PermissionDefault
	return n
}

// Permission reports the current capability state.
func (n *DesktopNotifier) Permission() domain.Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.permission
}

// Request asks for alert permission. With notify-send there is no OS
// prompt, so an available binary grants immediately. Never fails.
func (n *DesktopNotifier) Request() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.sendPath == "" {
		return false
	}
	n.permission = domain.PermissionGranted
	return true
}

// Notify dispatches a desktop alert; failures are logged only.
func (n *DesktopNotifier) Notify(title, body string) {
	n.mu.Lock()
	path := n.sendPath
	granted := n.permission == domain.PermissionGranted
	n.mu.Unlock()

	if path == "" || !granted {
		return
	}

	if err := exec.Command(path, "--app-name=stockwatch", title, body).Run(); err != nil {
		n.logger.Warn("failed to dispatch desktop alert", logger.Error(err))
	}
}
