package service_test

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/zy091/iwishneed-sub001/internal/model"
)

type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) Create(ctx context.Context, exec sqlx.ExtContext, comment *model.Comment) (string, error) {
	args := m.Called(ctx, exec, comment)
	return args.String(0), args.Error(1)
}

func (m *MockCommentRepository) GetPublicByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.PublicComment, error) {
	args := m.Called(ctx, exec, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicComment), args.Error(1)
}

type MockAttachmentRepository struct{ mock.Mock }

func (m *MockAttachmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, attachment *model.AttachmentDescriptor) error {
	return m.Called(ctx, exec, attachment).Error(0)
}

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) CreateSignedUploadURL(ctx context.Context, key string, expire time.Duration) (*model.UploadTicket, error) {
	args := m.Called(ctx, key, expire)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadTicket), args.Error(1)
}

func (m *MockS3Storage) CreateSignedDownloadURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}
