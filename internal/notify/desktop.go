package notify

import (
	"sync"
	"time"
)

// Permission is the desktop alert permission state.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Alert is a desktop notification currently on screen.
type Alert struct {
	Title     string
	Body      string
	Icon      string
	Tag       string
	ShownAt   time.Time
	ExpiresAt time.Time
}

// ParsePermission maps a stored permission back to its state. Anything
// unrecognised is the undecided default.
func ParsePermission(s string) Permission {
	switch p := Permission(s); p {
	case PermissionGranted, PermissionDenied:
		return p
	}
	return PermissionDefault
}

// Deliverer hands an alert to the operating system.
type Deliverer interface {
	Deliver(title, body, icon string) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(title, body, icon string) error

func (f DelivererFunc) Deliver(title, body, icon string) error { return f(title, body, icon) }

// Desktop holds desktop alerts. Alerts are only shown once permission has
// been granted and each one dismisses itself after the configured delay.
// A second alert with the same tag replaces the first.
//
// The alert list mirrors what was shown so the TUI can render it; when a
// Deliverer is set each alert is also raised by the OS.
type Desktop struct {
	mu         sync.Mutex
	permission Permission
	dismiss    time.Duration
	now        func() time.Time
	alerts     []Alert
	deliverer  Deliverer
	lastErr    error
}

// DesktopOption configures a Desktop.
type DesktopOption func(*Desktop)

// WithPermission starts the Desktop with a previously decided permission.
func WithPermission(p Permission) DesktopOption {
	return func(d *Desktop) { d.permission = ParsePermission(string(p)) }
}

// WithDeliverer raises every shown alert through dl as well.
func WithDeliverer(dl Deliverer) DesktopOption {
	return func(d *Desktop) { d.deliverer = dl }
}

// NewDesktop creates a Desktop with the given auto-dismiss delay.
func NewDesktop(dismiss time.Duration, now func() time.Time, opts ...DesktopOption) *Desktop {
	if now == nil {
		now = time.Now
	}
	d := &Desktop{permission: PermissionDefault, dismiss: dismiss, now: now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Permission returns the current permission state.
func (d *Desktop) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission
}

// RequestPermission resolves a default permission by calling ask. A decided
// permission is returned unchanged without asking again.
func (d *Desktop) RequestPermission(ask func() bool) Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.permission != PermissionDefault {
		return d.permission
	}
	if ask != nil && ask() {
		d.permission = PermissionGranted
	} else {
		d.permission = PermissionDenied
	}
	return d.permission
}

// Send shows an alert if permission is granted and reports whether it did.
// A delivery failure still counts as shown; it is kept for DeliveryErr.
func (d *Desktop) Send(title, body, icon, tag string) bool {
	if !d.record(title, body, icon, tag) {
		return false
	}
	if d.deliverer == nil {
		return true
	}
	err := d.deliverer.Deliver(title, body, icon)
	d.mu.Lock()
	d.lastErr = err
	d.mu.Unlock()
	return true
}

// DeliveryErr returns the error from the most recent OS delivery.
func (d *Desktop) DeliveryErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

func (d *Desktop) record(title, body, icon, tag string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.permission != PermissionGranted {
		return false
	}
	now := d.now()
	d.pruneLocked(now)
	if tag != "" {
		for i, a := range d.alerts {
			if a.Tag == tag {
				d.alerts = append(d.alerts[:i], d.alerts[i+1:]...)
				break
			}
		}
	}
	d.alerts = append(d.alerts, Alert{
		Title:     title,
		Body:      body,
		Icon:      icon,
		Tag:       tag,
		ShownAt:   now,
		ExpiresAt: now.Add(d.dismiss),
	})
	return true
}

// Active returns the alerts that have not yet been dismissed.
func (d *Desktop) Active() []Alert {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneLocked(d.now())
	out := make([]Alert, len(d.alerts))
	copy(out, d.alerts)
	return out
}

func (d *Desktop) pruneLocked(now time.Time) {
	kept := d.alerts[:0]
	for _, a := range d.alerts {
		if now.Before(a.ExpiresAt) {
			kept = append(kept, a)
		}
	}
	d.alerts = kept
}
