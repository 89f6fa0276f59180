// Package media provides ClockPlayer, a media element that plays nothing.
//
// ClockPlayer follows the state machine of an HTML media element (source,
// readiness, playback time, paused flag and events) driven by a clock the
// host advances. It lets the navigation engine run in a terminal, in tests
// and in headless tools without decoding audio.
//
// # Event Delivery
//
// Events are queued while the player changes state and delivered only by
// Dispatch, on the caller's goroutine:
//
//	p := media.NewClockPlayer(media.WithLoadLatency(300 * time.Millisecond))
//	eng := player.New(reg, p) // subscribes to p
//	...
//	p.Advance(tick)
//	p.Dispatch()
//
// A navigation therefore completes its source switch and seek before any
// listener sees the resulting events.
package media
