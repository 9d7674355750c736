// Package repositories provides the persistence layer for the client's local state.
//
// Each repository implements models.Repository[T] for a specific entity type,
// handling CRUD operations, soft deletes, and sequence generation. The local
// store holds only client-side state (the saved session and watch history);
// videos and comments always come from the platform API and are never cached
// here.
package repositories
