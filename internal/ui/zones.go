package ui

import (
	"github.com/atomicstack/popup-apps/internal/overlay"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Zone ids for clickable tiles. The overlay regions use overlay.RegionFolder
// and overlay.RegionDetails.
const (
	zoneLaunch = "details:launch"
)

func groupZoneID(group string) string {
	return "group:" + group
}

func appZoneID(name string) string {
	return "app:" + name
}

// Regions records where rendered content landed on screen so pointer presses
// can be tested against it.
type Regions interface {
	overlay.HitTester
	// Mark wraps s so its on-screen bounds are recorded under id.
	Mark(id, s string) string
	// Scan strips the markers from a full frame and records their bounds.
	Scan(s string) string
}

// ZoneRegions implements Regions on top of a bubblezone manager.
type ZoneRegions struct {
	manager *zone.Manager
}

// NewZoneRegions wraps manager.
func NewZoneRegions(manager *zone.Manager) *ZoneRegions {
	return &ZoneRegions{manager: manager}
}

func (z *ZoneRegions) Mark(id, s string) string {
	return z.manager.Mark(id, s)
}

func (z *ZoneRegions) Scan(s string) string {
	return z.manager.Scan(s)
}

func (z *ZoneRegions) Hit(id string, ev overlay.PointerEvent) bool {
	info := z.manager.Get(id)
	if info == nil || info.IsZero() {
		return false
	}
	return info.InBounds(tea.MouseMsg{X: ev.X, Y: ev.Y})
}

// Close stops the manager's background worker.
func (z *ZoneRegions) Close() {
	z.manager.Close()
}
