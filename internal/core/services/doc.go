// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. They never start OS processes or
// touch the terminal directly; that is left to adapters.
package services
