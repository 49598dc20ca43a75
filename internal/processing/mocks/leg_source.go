package mocks

import (
	"context"

	"visastay/internal/app"
)

// MockLegSource is a test double for a flight log source
type MockLegSource struct {
	Legs  []app.FlightLeg
	Error error

	LoadCalls int
}

// NewMockLegSource creates a mock source returning legs
func NewMockLegSource(legs ...app.FlightLeg) *MockLegSource {
	return &MockLegSource{Legs: legs}
}

func (m *MockLegSource) LoadLegs(ctx context.Context) ([]app.FlightLeg, error) {
	m.LoadCalls++
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Legs, nil
}

// MockLegStore is a test double for the flight log store
type MockLegStore struct {
	Imported []app.FlightLeg
	Error    error
}

func (m *MockLegStore) ImportLegs(ctx context.Context, legs []app.FlightLeg) (int, error) {
	if m.Error != nil {
		return 0, m.Error
	}
	m.Imported = append(m.Imported, legs...)
	return len(legs), nil
}
