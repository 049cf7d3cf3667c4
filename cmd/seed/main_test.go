package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "notesvc/internal/errors"
	"notesvc/internal/model"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, email, password string) (uuid.UUID, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

type mockNoteService struct {
	mock.Mock
}

func (m *mockNoteService) Create(ctx context.Context, ownerID uuid.UUID, content string) (*model.Note, error) {
	args := m.Called(ctx, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *mockNoteService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *mockNoteService) DeleteByOwnerAndID(ctx context.Context, ownerID, noteID uuid.UUID) error {
	return m.Called(ctx, ownerID, noteID).Error(0)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSeed_CreatesUserAndNotes(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	authSvc := new(mockAuthService)
	notes := new(mockNoteService)

	authSvc.On("Signup", ctx, "demo@example.com", "pw").Return(userID, nil)
	for _, content := range demoNotes {
		notes.On("Create", ctx, userID, content).Return(&model.Note{UserID: userID, Content: content}, nil).Once()
	}

	err := seed(ctx, quietLogger(), authSvc, notes, "demo@example.com", "pw")

	assert.NoError(t, err)
	authSvc.AssertExpectations(t)
	notes.AssertExpectations(t)
}

func TestSeed_ExistingUserIsSkipped(t *testing.T) {
	ctx := context.Background()
	authSvc := new(mockAuthService)
	notes := new(mockNoteService)

	authSvc.On("Signup", ctx, "demo@example.com", "pw").Return(uuid.Nil, apperrors.ErrDuplicateUser)

	err := seed(ctx, quietLogger(), authSvc, notes, "demo@example.com", "pw")

	assert.NoError(t, err)
	notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSeed_PropagatesNoteFailure(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	authSvc := new(mockAuthService)
	notes := new(mockNoteService)
	boom := errors.New("boom")

	authSvc.On("Signup", ctx, "demo@example.com", "pw").Return(userID, nil)
	notes.On("Create", ctx, userID, demoNotes[0]).Return(nil, boom)

	err := seed(ctx, quietLogger(), authSvc, notes, "demo@example.com", "pw")

	assert.ErrorIs(t, err, boom)
}
