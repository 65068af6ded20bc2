package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	"github.com/KirkDiggler/dnd-sheet/internal/repositories/characters"
	mockcharacters "github.com/KirkDiggler/dnd-sheet/internal/repositories/characters/mock"
	"github.com/KirkDiggler/dnd-sheet/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type FlusherTestSuite struct {
	suite.Suite
	mu   sync.Mutex
	rec  *character.Record
	repo characters.Repository
	logs *observer.ObservedLogs
	f    *Flusher
}

func (s *FlusherTestSuite) SetupTest() {
	s.rec = testutils.CreateTestRecord(s.T(), "flush-1", shared.ClassMonk)
	s.repo = characters.NewInMemoryRepository()

	core, logs := observer.New(zap.DebugLevel)
	s.logs = logs
	s.f = NewFlusher(&FlusherConfig{
		Repository: s.repo,
		Snapshot:   s.snapshot,
		Delay:      testDelay,
		Logger:     zap.New(core),
	})
}

func (s *FlusherTestSuite) snapshot() *character.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

func (s *FlusherTestSuite) rename(name string) {
	s.mu.Lock()
	s.rec.Identity.Name = name
	s.mu.Unlock()
}

func (s *FlusherTestSuite) TestBurstSavesLatestStateOnce() {
	for _, name := range []string{"a", "b", "c", "final"} {
		s.rename(name)
		s.f.Schedule()
	}

	s.Eventually(func() bool { return s.f.Saves() == 1 }, time.Second, 5*time.Millisecond)

	stored, err := s.repo.Get(context.Background(), "flush-1")
	s.Require().NoError(err)
	s.Equal("final", stored.Identity.Name)

	time.Sleep(3 * testDelay)
	s.Equal(1, s.f.Saves())
	s.Equal(1, s.logs.FilterMessage("character saved").Len())
}

func (s *FlusherTestSuite) TestFlushWritesImmediately() {
	s.f.Schedule()
	s.Require().NoError(s.f.Flush(context.Background()))

	_, err := s.repo.Get(context.Background(), "flush-1")
	s.NoError(err)
	s.False(s.f.Pending())
}

func (s *FlusherTestSuite) TestFlushWithNothingPending() {
	s.NoError(s.f.Flush(context.Background()))
	s.Zero(s.f.Saves())
}

func (s *FlusherTestSuite) TestCloseFlushesAndStops() {
	s.rename("closing")
	s.f.Schedule()
	s.Require().NoError(s.f.Close(context.Background()))

	stored, err := s.repo.Get(context.Background(), "flush-1")
	s.Require().NoError(err)
	s.Equal("closing", stored.Identity.Name)

	s.f.Schedule()
	time.Sleep(3 * testDelay)
	s.Equal(1, s.f.Saves())
}

func (s *FlusherTestSuite) TestSaveErrorIsLoggedAndReturnedByFlush() {
	ctrl := gomock.NewController(s.T())
	repo := mockcharacters.NewMockRepository(ctrl)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk on fire"))

	core, logs := observer.New(zap.DebugLevel)
	f := NewFlusher(&FlusherConfig{
		Repository: repo,
		Snapshot:   s.snapshot,
		Delay:      time.Hour,
		Logger:     zap.New(core),
	})

	f.Schedule()
	err := f.Flush(context.Background())
	s.Require().Error(err)
	s.Equal(err, f.Err())

	entries := logs.FilterMessage("failed to save character").All()
	s.Require().Len(entries, 1)
	s.Equal("flush-1", entries[0].ContextMap()["character_id"])
}

func (s *FlusherTestSuite) TestCloseWaitsForSaveInFlight() {
	ctrl := gomock.NewController(s.T())
	repo := mockcharacters.NewMockRepository(ctrl)

	started := make(chan struct{})
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *character.Record) error {
		close(started)
		time.Sleep(100 * time.Millisecond)
		return errors.New("connection reset")
	})

	f := NewFlusher(&FlusherConfig{Repository: repo, Snapshot: s.snapshot, Delay: 5 * time.Millisecond})
	f.Schedule()
	<-started

	err := f.Close(context.Background())
	s.Require().Error(err)
	s.Equal("connection reset", err.Error())
	s.Equal(1, f.Saves())
}

func (s *FlusherTestSuite) TestSnapshotIsolatesSavedRecord() {
	ctrl := gomock.NewController(s.T())
	repo := mockcharacters.NewMockRepository(ctrl)

	var saved *character.Record
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec *character.Record) error {
		saved = rec
		return nil
	})

	f := NewFlusher(&FlusherConfig{Repository: repo, Snapshot: s.snapshot, Delay: time.Hour})
	f.Schedule()
	s.Require().NoError(f.Flush(context.Background()))

	s.rename("mutated later")
	s.Equal("New Hero", saved.Identity.Name)
}

func TestFlusherTestSuite(t *testing.T) {
	suite.Run(t, new(FlusherTestSuite))
}

func TestNewFlusher_Panics(t *testing.T) {
	repo := characters.NewInMemoryRepository()
	snap := func() *character.Record { return nil }

	assert.Panics(t, func() { NewFlusher(nil) })
	assert.Panics(t, func() { NewFlusher(&FlusherConfig{Snapshot: snap}) })
	assert.Panics(t, func() { NewFlusher(&FlusherConfig{Repository: repo}) })
	assert.NotPanics(t, func() { NewFlusher(&FlusherConfig{Repository: repo, Snapshot: snap}) })
}
