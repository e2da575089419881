// Package device implements the control loop of the handheld dice device:
// button gestures, the settings menu, statistics, power saving and the
// battery gauge, on top of the dice engine.
package device

import (
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catan-dice/internal/config"
	"github.com/vovakirdan/catan-dice/internal/core"
	"github.com/vovakirdan/catan-dice/internal/dice"
	"github.com/vovakirdan/catan-dice/internal/storage"
)

// SettingsStore persists the settings of a device.
type SettingsStore interface {
	LoadSettings(deviceID string) (dice.Settings, bool, error)
	SaveSettings(deviceID string, settings dice.Settings) error
}

// StatisticsStore persists the sum histogram of a device.
type StatisticsStore interface {
	LoadStatistics(deviceID string) ([]dice.Bucket, error)
	SaveStatistics(deviceID string, buckets []dice.Bucket) error
	IncrementStatistic(deviceID string, sum int) error
}

// RollLog records committed rolls.
type RollLog interface {
	AppendRoll(r storage.RollRecord) (int64, error)
}

// View is the screen the device is showing.
type View int

const (
	ViewDice View = iota
	ViewMenu
	ViewStats
	ViewRolling
	ViewSleeping
)

// String returns a human-readable name for the view.
func (v View) String() string {
	switch v {
	case ViewDice:
		return "dice"
	case ViewMenu:
		return "menu"
	case ViewStats:
		return "stats"
	case ViewRolling:
		return "rolling"
	case ViewSleeping:
		return "sleeping"
	default:
		return "unknown"
	}
}

// MenuPage is a page of the settings menu.
type MenuPage int

const (
	PageDiceMode MenuPage = iota
	PageGameVariant
	PagePowerSaving

	numMenuPages = 3
)

// jitterSalt decorrelates the shake offsets from the dice draws.
const jitterSalt = 0x5eed

// AnimFrame is a transient roll frame with its on-screen shake offset.
type AnimFrame struct {
	dice.Frame
	OffsetX int
	OffsetY int
}

// Options configures a Device. Nil stores disable persistence.
type Options struct {
	DeviceID  string
	SessionID string
	Seed      int64 // 0 seeds from the current time
	Config    config.DeviceConfig
	Settings  SettingsStore
	Stats     StatisticsStore
	Rolls     RollLog
	Gauge     Gauge
	Logger    *log.Logger
	Now       func() time.Time
}

// Device is one simulated handheld. It is not safe for concurrent use; each
// session owns its own Device.
type Device struct {
	id        string
	sessionID string
	cfg       config.DeviceConfig
	defaults  dice.Settings
	engine    *dice.Engine
	jitter    *rand.Rand

	settingsStore SettingsStore
	statsStore    StatisticsStore
	rollLog       RollLog
	gauge         Gauge
	logger        *log.Logger
	now           func() time.Time

	view     View
	menuPage MenuPage

	// Roll playback
	frames     []AnimFrame
	frameIndex int

	lastActivity     time.Time
	lastBatteryCheck time.Time
	battery          int
}

// New creates a device, loading its persisted settings and statistics.
func New(opts Options) *Device {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config == (config.DeviceConfig{}) {
		opts.Config = config.DefaultDeviceConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Gauge == nil {
		opts.Gauge = StaticGauge(opts.Config.Power.BatteryVoltage)
	}
	if opts.DeviceID == "" {
		opts.DeviceID = core.DefaultConfig().DeviceID
	}
	now := opts.Now()
	if opts.Seed == 0 {
		opts.Seed = now.UnixNano()
	}

	defaults, err := opts.Config.DefaultSettings()
	if err != nil {
		opts.Logger.Warn("invalid default settings in config", "error", err)
		defaults = dice.DefaultSettings()
	}

	d := &Device{
		id:            opts.DeviceID,
		sessionID:     opts.SessionID,
		cfg:           opts.Config,
		defaults:      defaults,
		engine:        dice.NewEngine(dice.NewRandomSource(opts.Seed), defaults, opts.Config.DiceGeometry()),
		jitter:        rand.New(rand.NewSource(opts.Seed ^ jitterSalt)),
		settingsStore: opts.Settings,
		statsStore:    opts.Stats,
		rollLog:       opts.Rolls,
		gauge:         opts.Gauge,
		logger:        opts.Logger.With("device", opts.DeviceID),
		now:           opts.Now,
		lastActivity:  now,
	}

	d.loadSettings()
	d.loadStatistics()
	d.sampleBattery(now)

	return d
}

// ID returns the device identifier used for persistence.
func (d *Device) ID() string {
	return d.id
}

// Engine exposes the dice engine.
func (d *Device) Engine() *dice.Engine {
	return d.engine
}

// Settings returns the current settings.
func (d *Device) Settings() dice.Settings {
	return d.engine.Settings()
}

// ApplySettings replaces the settings and persists them. The dice set
// follows the new variant right away.
func (d *Device) ApplySettings(s dice.Settings) {
	d.engine.SetSettings(s)
	d.saveSettings()
}

// View returns the screen currently shown.
func (d *Device) View() View {
	return d.view
}

// MenuPage returns the current menu page. Only meaningful in ViewMenu.
func (d *Device) MenuPage() MenuPage {
	return d.menuPage
}

// Battery returns the last sampled charge percentage.
func (d *Device) Battery() int {
	return d.battery
}

// FrameDelay returns the playback delay between roll frames.
func (d *Device) FrameDelay() time.Duration {
	return d.cfg.FrameDelay()
}

// Translate maps a button gesture to a semantic event for the current view.
func (d *Device) Translate(p core.Press) core.Event {
	inMenu := d.view == ViewMenu

	switch p.Button {
	case core.ButtonMain:
		switch p.Gesture {
		case core.GestureClick:
			switch d.view {
			case ViewMenu:
				return core.EventMenuActivate
			case ViewStats:
				return core.EventStatsToggle
			default:
				return core.EventRollRequested
			}
		case core.GestureLongPress:
			if !inMenu {
				return core.EventStatsToggle
			}
		}
	case core.ButtonMenu:
		switch p.Gesture {
		case core.GestureClick:
			return core.EventMenuAdvance
		case core.GestureLongPress:
			if !inMenu {
				return core.EventStatsReset
			}
		}
	}
	return core.EventNone
}

// Press handles a button gesture. A sleeping device wakes up instead, and
// input is ignored while a roll is playing. Returns the dispatched event.
func (d *Device) Press(p core.Press) core.Event {
	switch d.view {
	case ViewSleeping:
		d.Wake()
		return core.EventNone
	case ViewRolling:
		return core.EventNone
	}

	d.lastActivity = d.now()
	e := d.Translate(p)
	d.Dispatch(e)
	return e
}

// Dispatch applies a semantic event.
func (d *Device) Dispatch(e core.Event) {
	d.logger.Debug("event", "event", e, "view", d.view)

	switch e {
	case core.EventRollRequested:
		d.Roll()
	case core.EventMenuAdvance:
		d.advanceMenu()
	case core.EventMenuActivate:
		d.activateMenuOption()
	case core.EventStatsToggle:
		if d.view == ViewStats {
			d.view = ViewDice
		} else {
			d.view = ViewStats
		}
	case core.EventStatsReset:
		d.engine.ResetStats()
		d.saveStatistics()
		d.logger.Info("statistics reset")
	}
}

// Roll commits one roll and queues its transient frames for playback.
func (d *Device) Roll() dice.Result {
	jitter := d.cfg.Animation.Jitter
	d.frames = d.frames[:0]
	res := d.engine.Roll(d.cfg.Animation.Frames, func(f dice.Frame) {
		d.frames = append(d.frames, AnimFrame{
			Frame:   f,
			OffsetX: d.jitter.Intn(2*jitter+1) - jitter,
			OffsetY: d.jitter.Intn(2*jitter+1) - jitter,
		})
	})

	d.recordStatistic(res.Sum())
	d.appendRoll(res)
	d.logger.Debug("rolled", "sum", res.Sum(), "white", res.Pair.White, "red", res.Pair.Red, "event", res.Event)

	d.frameIndex = 0
	if len(d.frames) > 0 {
		d.view = ViewRolling
	} else {
		d.view = ViewDice
	}
	return res
}

// Frames returns a copy of the transient frames of the roll being played.
func (d *Device) Frames() []AnimFrame {
	return slices.Clone(d.frames)
}

// AdvanceFrame moves playback to the next frame. It returns false and shows
// the settled dice once the last frame has been shown.
func (d *Device) AdvanceFrame() bool {
	if d.view != ViewRolling {
		return false
	}
	d.frameIndex++
	if d.frameIndex >= len(d.frames) {
		d.FinishRoll()
		return false
	}
	return true
}

// FinishRoll ends playback and shows the committed dice.
func (d *Device) FinishRoll() {
	if d.view != ViewRolling {
		return
	}
	d.frames = d.frames[:0]
	d.frameIndex = 0
	d.view = ViewDice
}

func (d *Device) currentFrame() (AnimFrame, bool) {
	if d.view != ViewRolling || d.frameIndex >= len(d.frames) {
		return AnimFrame{}, false
	}
	return d.frames[d.frameIndex], true
}

// advanceMenu opens the menu or moves to the next page. Leaving the last
// page saves the settings and starts fresh statistics.
func (d *Device) advanceMenu() {
	if d.view != ViewMenu {
		d.view = ViewMenu
		d.menuPage = PageDiceMode
		return
	}

	d.menuPage++
	if d.menuPage < numMenuPages {
		return
	}

	d.view = ViewDice
	d.menuPage = PageDiceMode
	d.saveSettings()
	d.engine.ResetStats()
	d.saveStatistics()
	d.logger.Info("settings saved", "mode", d.Settings().Mode, "variant", d.Settings().Variant, "power_save", d.Settings().PowerSave)
}

func (d *Device) activateMenuOption() {
	switch d.menuPage {
	case PageDiceMode:
		d.engine.CycleProbabilityMode()
	case PageGameVariant:
		d.engine.CycleGameVariant()
	case PagePowerSaving:
		d.engine.CyclePowerSaveMode()
	}
}

// Tick runs housekeeping: battery sampling and the power-save deadline.
func (d *Device) Tick(now time.Time) {
	if d.view == ViewSleeping {
		return
	}
	if now.Sub(d.lastBatteryCheck) >= d.cfg.BatteryCheckInterval() {
		d.sampleBattery(now)
	}
	if d.ShouldSleep(now) {
		d.Sleep()
	}
}

// ShouldSleep reports whether the power-save timeout has elapsed since the
// last button press.
func (d *Device) ShouldSleep(now time.Time) bool {
	if d.view == ViewSleeping || d.view == ViewRolling {
		return false
	}
	timeout := d.Settings().PowerSave.Timeout()
	if timeout == 0 {
		return false
	}
	return now.Sub(d.lastActivity) > timeout
}

// Sleep blanks the display until the next button press.
func (d *Device) Sleep() {
	d.view = ViewSleeping
	d.logger.Info("entering sleep", "idle", d.now().Sub(d.lastActivity).Round(time.Second))
}

// Wake restarts the device from sleep. Settings and statistics are reloaded
// from the stores, the way a cold boot does. Without stores the in-memory
// state is kept.
func (d *Device) Wake() {
	if d.view != ViewSleeping {
		return
	}
	now := d.now()
	if d.settingsStore != nil {
		d.loadSettings()
	}
	d.loadStatistics()
	d.view = ViewDice
	d.menuPage = PageDiceMode
	d.lastActivity = now
	d.sampleBattery(now)
	d.logger.Info("woke up")
}

func (d *Device) sampleBattery(now time.Time) {
	d.battery = PercentFromVoltage(d.gauge.Voltage())
	d.lastBatteryCheck = now
}

func (d *Device) loadSettings() {
	settings := d.defaults
	if d.settingsStore != nil {
		stored, found, err := d.settingsStore.LoadSettings(d.id)
		switch {
		case err != nil:
			d.logger.Error("could not load settings", "error", err)
		case found:
			settings = stored
		}
	}
	d.engine.SetSettings(settings)
}

func (d *Device) saveSettings() {
	if d.settingsStore == nil {
		return
	}
	if err := d.settingsStore.SaveSettings(d.id, d.Settings()); err != nil {
		d.logger.Error("could not save settings", "error", err)
	}
}

func (d *Device) loadStatistics() {
	if d.statsStore == nil {
		return
	}
	buckets, err := d.statsStore.LoadStatistics(d.id)
	if err != nil {
		d.logger.Error("could not load statistics", "error", err)
		return
	}
	if err := d.engine.Stats().Restore(buckets); err != nil {
		d.logger.Error("discarding corrupt statistics", "error", err)
	}
}

func (d *Device) saveStatistics() {
	if d.statsStore == nil {
		return
	}
	if err := d.statsStore.SaveStatistics(d.id, d.engine.Stats().Snapshot()); err != nil {
		d.logger.Error("could not save statistics", "error", err)
	}
}

func (d *Device) recordStatistic(sum int) {
	if d.statsStore == nil {
		return
	}
	if err := d.statsStore.IncrementStatistic(d.id, sum); err != nil {
		d.logger.Error("could not record statistic", "error", err)
	}
}

func (d *Device) appendRoll(res dice.Result) {
	if d.rollLog == nil {
		return
	}
	_, err := d.rollLog.AppendRoll(storage.RollRecord{
		DeviceID:  d.id,
		SessionID: d.sessionID,
		Variant:   res.Variant,
		Mode:      res.Mode,
		White:     res.Pair.White,
		Red:       res.Pair.Red,
		Event:     res.Event,
	})
	if err != nil {
		d.logger.Error("could not record roll", "error", err)
	}
}
