// Package models defines domain entities and persistence interfaces for the tubecli client.
//
// The package contains two categories of types:
//
// 1. Persistent Entities: database-backed local state with full lifecycle management
//   - [Session] : the saved identity snapshot + bearer token pair
//   - [HistoryEntry] : a locally recorded video watch
//
// 2. Persistence interfaces: [Model] for entity lifecycle and [Repository] for CRUD access.
//
// Wire types for the platform API (Video, Comment, User) live in the api
// package, since they mirror the server's JSON shapes rather than local state.
package models
