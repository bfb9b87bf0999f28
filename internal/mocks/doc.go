// Package mocks provides centralized mock implementations for testing.
//
// The store mocks keep their records in memory so service and handler tests can
// exercise real read-after-write behavior, and every method can be overridden
// with a function field to inject failures:
//
//	admins := mocks.NewMockAdminStore()
//	admins.CreateFn = func(ctx context.Context, a *domain.Administrator) error {
//	    return store.ErrAdminExists
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
