// Package reconcile keeps a single video aggregate consistent with the
// platform across user mutations.
//
// A WatchSession owns one aggregate at a time plus the comment edit state.
// Mutations run client-side preconditions first (session present, text
// non-empty after trimming) and make no network call when one fails. Applied
// responses reconcile in one of two ways: wholesale replacement of the
// aggregate with the server's copy, or an optimistic append of the returned
// comment. Responses that arrive after the session has loaded a different
// video are discarded via a generation counter.
package reconcile
