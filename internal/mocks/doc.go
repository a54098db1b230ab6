/*
Package mocks will have all the mocks of the application.
*/
package mocks // import "github.com/whaeuser/plotterm/internal/mocks"

// Service mocks.
//go:generate mockery -output ./service/metric -outpkg metric -dir ../service/metric -name IdentifiableGatherer

// View mocks.
//go:generate mockery -output ./view/render -outpkg render -dir ../view/render -name PanelRenderer
