package characters

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
	mockuuid "github.com/KirkDiggler/dnd-sheet/internal/uuid/mock"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedisMockTestSuite struct {
	suite.Suite
	client        *redis.Client
	mock          redismock.ClientMock
	repo          Repository
	mockCtrl      *gomock.Controller
	uuidGenerator *mockuuid.MockGenerator
}

func (s *RedisMockTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.uuidGenerator = mockuuid.NewMockGenerator(s.mockCtrl)
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:        s.client,
		UUIDGenerator: s.uuidGenerator,
	})
}

func (s *RedisMockTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisMockTestSuite(t *testing.T) {
	suite.Run(t, new(RedisMockTestSuite))
}

func (s *RedisMockTestSuite) newRecord(id string) *character.Record {
	rec, err := character.New(rulebook.Default(), shared.ClassFighter, id)
	s.Require().NoError(err)
	rec.Identity.Name = "Brakka"
	return rec
}

func (s *RedisMockTestSuite) encoded(rec *character.Record) string {
	data, err := character.Marshal(rec)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisMockTestSuite) TestSave_HappyPath() {
	ctx := context.Background()
	rec := s.newRecord("char-1")

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:char-1", s.encoded(rec), 0).SetVal("OK")
	s.mock.ExpectSAdd("characters", "char-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Save(ctx, rec))
}

func (s *RedisMockTestSuite) TestSave_AssignsID() {
	ctx := context.Background()
	rec := s.newRecord("")
	s.uuidGenerator.EXPECT().New().Return("generated-id")

	expected := rec.Clone()
	expected.Meta.ID = "generated-id"

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:generated-id", s.encoded(expected), 0).SetVal("OK")
	s.mock.ExpectSAdd("characters", "generated-id").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.Save(ctx, rec))
	s.Equal("generated-id", rec.Meta.ID)
}

func (s *RedisMockTestSuite) TestSave_RedisError() {
	ctx := context.Background()
	rec := s.newRecord("char-1")

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:char-1", s.encoded(rec), 0).SetErr(errors.New("connection reset"))

	err := s.repo.Save(ctx, rec)
	s.Require().Error(err)
	s.Equal(dnderr.CodeInternal, dnderr.GetCode(err))
}

func (s *RedisMockTestSuite) TestSave_Nil() {
	err := s.repo.Save(context.Background(), nil)
	s.Equal(dnderr.CodeInvalidArgument, dnderr.GetCode(err))
}

func (s *RedisMockTestSuite) TestGet_HappyPath() {
	ctx := context.Background()
	rec := s.newRecord("char-1")

	s.mock.ExpectGet("character:char-1").SetVal(s.encoded(rec))

	got, err := s.repo.Get(ctx, "char-1")
	s.Require().NoError(err)
	s.Equal(rec, got)
}

func (s *RedisMockTestSuite) TestGet_NotFound() {
	s.mock.ExpectGet("character:missing").RedisNil()

	_, err := s.repo.Get(context.Background(), "missing")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisMockTestSuite) TestGet_Corrupt() {
	s.mock.ExpectGet("character:bad").SetVal(`{"identity":{"class":"Bard"}}`)

	_, err := s.repo.Get(context.Background(), "bad")
	s.True(dnderr.IsValidation(err), "got %v", err)
}

func (s *RedisMockTestSuite) TestGet_EmptyID() {
	_, err := s.repo.Get(context.Background(), "")
	s.Equal(dnderr.CodeInvalidArgument, dnderr.GetCode(err))
}

func (s *RedisMockTestSuite) TestDelete() {
	ctx := context.Background()

	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("character:char-1").SetVal(1)
	s.mock.ExpectSRem("characters", "char-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()
	s.NoError(s.repo.Delete(ctx, "char-1"))

	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("character:char-1").SetVal(0)
	s.mock.ExpectSRem("characters", "char-1").SetVal(0)
	s.mock.ExpectTxPipelineExec()
	s.True(dnderr.IsNotFound(s.repo.Delete(ctx, "char-1")))
}

func (s *RedisMockTestSuite) TestList() {
	ctx := context.Background()
	a := s.newRecord("a")
	b := s.newRecord("b")

	// reads run in parallel
	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectSMembers("characters").SetVal([]string{"b", "gone", "a"})
	s.mock.ExpectGet("character:a").SetVal(s.encoded(a))
	s.mock.ExpectGet("character:b").SetVal(s.encoded(b))
	s.mock.ExpectGet("character:gone").RedisNil()

	got, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Equal([]*character.Record{a, b}, got)
}

func (s *RedisMockTestSuite) TestList_IndexError() {
	s.mock.ExpectSMembers("characters").SetErr(errors.New("timeout"))

	_, err := s.repo.List(context.Background())
	s.Equal(dnderr.CodeInternal, dnderr.GetCode(err))
}

func TestNewRedisRepository_Panics(t *testing.T) {
	suite.Run(t, new(constructorSuite))
}

type constructorSuite struct {
	suite.Suite
}

func (s *constructorSuite) TestRequiresConfig() {
	s.Panics(func() { NewRedisRepository(nil) })
	s.Panics(func() { NewRedisRepository(&RedisRepoConfig{}) })
}

func (s *constructorSuite) TestDefaults() {
	client, _ := redismock.NewClientMock()
	repo := NewRedisRepository(&RedisRepoConfig{Client: client}).(*redisRepo)

	s.Equal("character:x", repo.key("x"))
	s.Equal("characters", repo.indexKey())
	s.Equal(defaultListConcurrency, repo.listConcurrency)
	s.NotNil(repo.uuidGenerator)
}
