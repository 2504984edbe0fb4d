// Package ports defines the contracts between the wizard engine and its
// external collaborators: snapshot persistence and distributed locking.
package ports
