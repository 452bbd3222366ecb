package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/logger"
)

// maxNamedItems caps how many items an alert lists by name; the rest
// collapse into an overflow count.
const maxNamedItems = 6

// WishlistSource is the wishlist state the detector consults on each
// check cycle.
type WishlistSource interface {
	Entries() []domain.WishlistEntry
	Settings() domain.NotificationSettings
	Permission() domain.Permission
}

// Detector compares each committed snapshot against the wishlist and
// batches every currently-available tracked item into one debounced
// alert. It deliberately does not suppress repeats across check
// cycles: an item still in stock next cycle becomes a candidate again
// once the previous batch has flushed.
type Detector struct {
	wishlist WishlistSource
	desktop  Notifier
	sound    Player
	logger   logger.Logger

	// initialWindow stretches the first debounce after startup so a
	// fresh session does not open with an alert burst.
	initialWindow time.Duration
	window        time.Duration

	mu      sync.Mutex
	pending []domain.PendingNotification
	timer   *time.Timer
	closed  bool

	started time.Time
	now     func() time.Time
}

// NewDetector builds a detector with the given debounce windows.
func NewDetector(
	wl WishlistSource,
	desktop Notifier,
	sound Player,
	log logger.Logger,
	initialWindow, window time.Duration,
) *Detector {
	return &Detector{
		wishlist:      wl,
		desktop:       desktop,
		sound:         sound,
		logger:        log,
		initialWindow: initialWindow,
		window:        window,
		started:       time.Now(),
		now:           time.Now,
	}
}

// Check evaluates one committed snapshot. Each wishlist entry found in
// stock with a non-zero count joins the pending batch; the debounce
// timer is re-armed. The batch always accumulates, even while dispatch
// is gated off, so state stays consistent when alerts are enabled
// later.
func (d *Detector) Check(snapshot *domain.Snapshot) {
	if snapshot == nil {
		return
	}

	entries := d.wishlist.Entries()
	if len(entries) == 0 {
		return
	}

	var available []domain.PendingNotification
	for _, entry := range entries {
		count, found := snapshot.Quantity(entry.Name, entry.Category)
		if !found {
			// Not listed at all: out of stock.
			continue
		}
		if count == domain.ZeroCount {
			continue
		}
		available = append(available, domain.PendingNotification{Entry: entry, Quantity: count})
	}

	if len(available) == 0 {
		return
	}
	d.enqueue(available)
}

// enqueue merges candidates into the pending batch (dedup by entry id)
// and re-arms the debounce timer.
func (d *Detector) enqueue(candidates []domain.PendingNotification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	for _, c := range candidates {
		duplicate := false
		for _, p := range d.pending {
			if p.Entry.ID == c.Entry.ID {
				duplicate = true
				break
			}
		}
		if !duplicate {
			d.pending = append(d.pending, c)
		}
	}

	window := d.window
	if d.now().Sub(d.started) < d.initialWindow {
		window = d.initialWindow
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(window, d.flush)
}

// flush dispatches one alert for the whole batch, then clears it.
func (d *Detector) flush() {
	d.mu.Lock()
	if d.closed || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()

	settings := d.wishlist.Settings()
	if !settings.Enabled || d.wishlist.Permission() != domain.PermissionGranted {
		d.logger.Debug("alert suppressed by settings or permission",
			logger.Int("items", len(batch)))
		return
	}

	if settings.Desktop {
		title, body := formatAlert(batch)
		d.desktop.Notify(title, body)
		d.logger.Info("stock alert dispatched",
			logger.Int("items", len(batch)))
	}
	if settings.Sound {
		d.sound.Play()
	}
}

// Close stops the debounce timer; a flush armed before teardown must
// never fire into a disposed store. Idempotent.
func (d *Detector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
}

// formatAlert renders the batched alert title and body, naming up to
// maxNamedItems items and collapsing the rest into an overflow count.
func formatAlert(batch []domain.PendingNotification) (title, body string) {
	title = fmt.Sprintf("🌱 Stock Alert: %d item%s available!",
		len(batch), plural(len(batch)))

	named := batch
	if len(named) > maxNamedItems {
		named = named[:maxNamedItems]
	}

	parts := make([]string, 0, len(named))
	for _, p := range named {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Entry.Name, p.Quantity))
	}
	body = strings.Join(parts, ", ")

	if extra := len(batch) - len(named); extra > 0 {
		body += fmt.Sprintf(" and %d more item%s", extra, plural(extra))
	}
	return title, body
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
