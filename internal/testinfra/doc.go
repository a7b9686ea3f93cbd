// Package testinfra starts throwaway dependencies for integration tests.
//
// Everything here is behind the "integration" build tag:
//
//	go test -tags integration ./...
package testinfra
