package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/evka/playforge/internal/generator"
	"github.com/evka/playforge/internal/jobs"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueGeneration(req generator.Request, userID string) (string, error) {
	args := m.Called(req, userID)
	return args.String(0), args.Error(1)
}

func (m *MockJobQueue) GenerationStatus(jobID string) (jobs.Status, bool) {
	args := m.Called(jobID)
	return args.Get(0).(jobs.Status), args.Bool(1)
}
