// Package player implements the navigation and reconciliation engine of a
// music book.
//
// The Engine binds the pages of a book.Registry to one shared media element.
// Page navigation, the scroll position of the presentation and playback are
// driven independently (buttons, table of contents links, scrolling, the end
// of a track); after every trigger the engine derives the current page from
// the media source and playback time and brings the user interface back in
// line with it.
//
// # Driving the Engine
//
//	eng := player.New(reg, media,
//	    player.WithViewport(view),
//	    player.WithStateListener(func(s player.UIState) {
//	        render(s)
//	    }),
//	)
//	eng.Start()
//	eng.Next(player.PlayStart)
//
// Media elements implementing EventSource deliver their events to
// HandleEvent automatically. Scroll notifications must be debounced by the
// caller (see package debounce) before calling HandleScroll.
//
// The Engine is not safe for concurrent use. It must be driven from the
// goroutine that owns the media element and the presentation.
package player
