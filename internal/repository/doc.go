// Package repository implements the data access layer for the board API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles the operations for one domain entity:
// job submissions and published listings.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, ListByState, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Lifecycle Writes
//
// State transitions go through conditional UPDATEs
// (WHERE lifecycle_state = $from), so a submission can only be moved by one
// concurrent decision. The approve-to-publish pair runs as an AtomicBatch:
// the state flip and the listing CREATE succeed or fail together.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - NONE (not NULL) for absent optional fields
//
// # Example Usage
//
//	repo := NewSubmissionRepository(db)
//	sub, err := repo.GetByID(ctx, "job_submission:abc123")
//	if err != nil {
//	    return err
//	}
//	if sub == nil {
//	    // Handle not found
//	}
package repository
