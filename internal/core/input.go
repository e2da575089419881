package core

// Button is one of the two physical buttons on the handheld.
type Button int

const (
	ButtonMain Button = iota // Roll button, lit while ready
	ButtonMenu               // Settings button
)

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonMain:
		return "Main"
	case ButtonMenu:
		return "Menu"
	default:
		return "Unknown"
	}
}

// Gesture is a debounced press pattern on a button.
type Gesture int

const (
	GestureClick Gesture = iota
	GestureLongPress
)

// String returns a human-readable name for the gesture.
func (g Gesture) String() string {
	switch g {
	case GestureClick:
		return "Click"
	case GestureLongPress:
		return "LongPress"
	default:
		return "Unknown"
	}
}

// Press is a gesture on a specific button, as delivered by the input layer.
type Press struct {
	Button  Button
	Gesture Gesture
}

// Event is a semantic device event, abstracted from the button that caused it.
type Event int

const (
	EventNone Event = iota
	EventRollRequested
	EventMenuAdvance  // Open the menu or move to the next page
	EventMenuActivate // Cycle the option on the current page
	EventStatsToggle  // Show or hide the statistics view
	EventStatsReset   // Zero the statistics
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventRollRequested:
		return "RollRequested"
	case EventMenuAdvance:
		return "MenuAdvance"
	case EventMenuActivate:
		return "MenuActivate"
	case EventStatsToggle:
		return "StatsToggle"
	case EventStatsReset:
		return "StatsReset"
	default:
		return "Unknown"
	}
}
