package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.service = New(s.mockRandom, testutil.NopLogger())
}

// NewBoard tests

func (s *ServiceSuite) TestNewBoardSizes() {
	for _, size := range []int{MinBoardSize, model.DefaultBoardSize, MaxBoardSize} {
		board, err := s.service.NewBoard(size)
		s.Require().NoError(err)
		s.Equal(size, board.Size())
	}
}

func (s *ServiceSuite) TestNewBoardRejectsBadSizes() {
	for _, size := range []int{-1, 0, 1, 27, 100} {
		_, err := s.service.NewBoard(size)
		s.ErrorIs(err, model.ErrInvalidBoardSize, "size %d", size)
		s.ErrorIs(s.service.ValidateSize(size), model.ErrInvalidBoardSize)
	}
}

func (s *ServiceSuite) TestWithRandomSwapsSource() {
	seeded := s.service.WithRandom(random.NewSeeded(1))
	s.NotSame(s.service, seeded)

	board := model.NewBoard(model.DefaultBoardSize)
	s.Require().NoError(seeded.PlaceFleet(board, model.StandardFleet()))
	s.Empty(s.mockRandom.Calls)
}

// ValidateFleet tests

func (s *ServiceSuite) TestValidateFleetStandard() {
	s.NoError(s.service.ValidateFleet(model.DefaultBoardSize, model.StandardFleet()))
}

func (s *ServiceSuite) TestValidateFleetRejects() {
	cases := []struct {
		name  string
		size  int
		fleet model.Fleet
	}{
		{"empty", 10, model.Fleet{}},
		{"unnamed", 10, model.Fleet{{Name: "", Length: 2}}},
		{"zero length", 10, model.Fleet{{Name: "Raft", Length: 0}}},
		{"longer than board", 4, model.Fleet{model.Carrier}},
		{"duplicate name", 10, model.Fleet{model.Destroyer, model.Destroyer}},
		{"too many cells", 3, model.Fleet{{Name: "A", Length: 3}, {Name: "B", Length: 3}, {Name: "C", Length: 3}, {Name: "D", Length: 1}}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.ErrorIs(s.service.ValidateFleet(tc.size, tc.fleet), model.ErrInvalidFleet)
		})
	}
}

// PlaceFleet tests

func (s *ServiceSuite) TestPlaceFleetUsesRandomOriginAndDirection() {
	board := model.NewBoard(5)
	s.mockRandom.QueueIntn(
		0, 0, int(model.DirectionRight), // Submarine, the longest, at (1,1) going right
		0, 0, int(model.DirectionRight), // Destroyer overlaps, retried
		0, 1, int(model.DirectionRight), // Destroyer at (1,2) going right
	)

	err := s.service.PlaceFleet(board, model.Fleet{model.Destroyer, model.Submarine})
	s.Require().NoError(err)

	// Placements keep fleet order
	s.Equal([]model.ShipPlacement{
		{Kind: model.Destroyer, Origin: model.Coordinate{X: 1, Y: 2}, Direction: model.DirectionRight},
		{Kind: model.Submarine, Origin: model.Coordinate{X: 1, Y: 1}, Direction: model.DirectionRight},
	}, board.Placements())
	s.Equal(0, s.mockRandom.Remaining())
}

func (s *ServiceSuite) TestPlaceFleetRestartsBlockedLayout() {
	board := model.NewBoard(3)

	// First layout: the Cruiser fits, then every Destroyer draw is (1,1) facing up
	s.mockRandom.QueueIntn(0, 0, int(model.DirectionRight))
	for range MaxPlacementAttempts {
		s.mockRandom.QueueIntn(0, 0, int(model.DirectionUp))
	}
	// Second layout succeeds
	s.mockRandom.QueueIntn(
		0, 2, int(model.DirectionRight), // Cruiser along the bottom row
		0, 0, int(model.DirectionRight), // Destroyer along the top row
	)

	err := s.service.PlaceFleet(board, model.Fleet{model.Destroyer, model.Cruiser})
	s.Require().NoError(err)

	s.Equal([]model.ShipPlacement{
		{Kind: model.Destroyer, Origin: model.Coordinate{X: 1, Y: 1}, Direction: model.DirectionRight},
		{Kind: model.Cruiser, Origin: model.Coordinate{X: 1, Y: 3}, Direction: model.DirectionRight},
	}, board.Placements())
	s.Equal(0, s.mockRandom.Remaining())
}

func (s *ServiceSuite) TestPlaceFleetStandardOnSmallBoards() {
	for _, size := range []int{5, 6, 7} {
		for seed := range uint64(200) {
			service := New(random.NewSeeded(seed), testutil.NopLogger())
			board := model.NewBoard(size)

			s.Require().NoError(service.PlaceFleet(board, model.StandardFleet()), "size %d seed %d", size, seed)
			s.Equal(len(model.StandardFleet()), board.ShipsRemaining())
		}
	}
}

func (s *ServiceSuite) TestPlaceFleetStandardNeverOverlaps() {
	service := New(random.NewSeeded(1234), testutil.NopLogger())

	for range 50 {
		board := model.NewBoard(model.DefaultBoardSize)
		s.Require().NoError(service.PlaceFleet(board, model.StandardFleet()))

		cells := make(map[model.Coordinate]bool)
		for _, ship := range board.Ships() {
			for _, c := range ship.Cells {
				s.True(board.InBounds(c))
				s.False(cells[c], "cell %v covered twice", c)
				cells[c] = true
			}
		}
		s.Len(cells, model.StandardFleet().TotalCells())
		s.Equal(5, board.ShipsRemaining())
	}
}

func (s *ServiceSuite) TestPlaceFleetGivesUp() {
	// An empty queue always draws (1,1) facing up, which never fits
	board := model.NewBoard(2)

	err := s.service.PlaceFleet(board, model.Fleet{model.Destroyer})
	s.ErrorIs(err, model.ErrPlacementFailed)
	s.Empty(board.Placements())
	s.Len(s.mockRandom.Calls, MaxLayoutAttempts*MaxPlacementAttempts*3)
}

func (s *ServiceSuite) TestPlaceFleetValidatesFirst() {
	board := model.NewBoard(3)

	err := s.service.PlaceFleet(board, model.Fleet{model.Carrier})
	s.ErrorIs(err, model.ErrInvalidFleet)
	s.Empty(s.mockRandom.Calls)
}
