// Package competition fans an auction out to the registered solver endpoints
// and streams their proposed solutions back as they arrive.
package competition

import (
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Metrics records solver interaction activity.
type Metrics interface {
	ObserveSolverRequest(solver string, err error, started time.Time)
	ObserveSolution(solver string, valid bool)
}
