package factory

import (
	"time"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/storage/memory"
	"github.com/mcoot/battleship-go/internal/testutil"
)

// TestSeed seeds the random source of every TestApp
const TestSeed = 20240101

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the concrete storage behind App.Storage
	Memory *memory.Storage
	// MockClock controls match timestamps
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with in-memory storage,
// a mocked clock and a seeded random source.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockClock.Tick = time.Second

	app := newWithDependencies(store, mockClock, random.NewSeeded(TestSeed), testutil.NopLogger())

	return &TestApp{
		App:       app,
		Memory:    store,
		MockClock: mockClock,
	}
}
