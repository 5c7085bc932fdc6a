// Package mocks provides centralized mock implementations for testing.
//
// Usage:
//
//	import "github.com/phrazzld/poetry-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gen := mocks.NewMockGeneratorWithDefaultPoem()
//	    svc, _ := service.NewPoetryService(gen, time.Second, logger)
//	    // Use the service in your test...
//	}
package mocks
