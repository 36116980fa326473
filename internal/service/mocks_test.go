package service

import (
	"context"
	"errors"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"

	"github.com/stretchr/testify/mock"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	args := m.Called(ctx, specs)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	args := m.Called(ctx, specs)
	note, _ := args.Get(0).(*entity.Note)
	return note, args.Error(1)
}

func (m *mockNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	args := m.Called(ctx, specs)
	notes, _ := args.Get(0).([]*entity.Note)
	return notes, args.Error(1)
}

func (m *mockNoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx, specs)
	return args.Get(0).(int64), args.Error(1)
}

// fakeUnitOfWork records transaction calls and hands out the shared mocks.
type fakeUnitOfWork struct {
	users     *mockUserRepository
	notes     *mockNoteRepository
	active    bool
	began     int
	committed int
	beginErr  error
	commitErr error
}

func (u *fakeUnitOfWork) Begin(context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.active = true
	u.began++
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.active {
		return errors.New("no active transaction")
	}
	u.active = false
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.active {
		return errors.New("no active transaction")
	}
	u.active = false
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return u.users
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository {
	return u.notes
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeFactory() (*fakeFactory, *mockUserRepository, *mockNoteRepository) {
	users := &mockUserRepository{}
	notes := &mockNoteRepository{}
	return &fakeFactory{uow: &fakeUnitOfWork{users: users, notes: notes}}, users, notes
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	var out []string
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func nopLogger() logger.ILogger {
	return logger.NewNopLogger()
}
