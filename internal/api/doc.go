// Package api implements the HTTP client for the Tube video-sharing platform.
//
// [Client] wraps every endpoint the terminal client consumes: video
// aggregates, view registration, likes/dislikes, comments, channel
// management, authentication, and profile updates. All calls share one
// rate-limited request path ([Client.do]) that attaches the bearer
// credential, maps response statuses onto the shared error taxonomy, and
// surfaces the server-provided message when one is present.
//
// Wire types mirror the server's JSON shapes. Fields the server sometimes
// omits (description, uploader avatar, thumbnail) decode to zero values and
// get their fallbacks from accessors on [Video], not from call sites.
package api
