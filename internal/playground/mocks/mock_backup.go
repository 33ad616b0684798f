package mocks

import (
	"context"
	"io"
	"mongoplay/internal/playground/backup"

	"github.com/stretchr/testify/mock"
)

// MockBackupService mocks the native dump, restore, export and import calls.
type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) summary(args mock.Arguments) (*backup.Summary, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backup.Summary), args.Error(1)
}

func (m *MockBackupService) Dump(ctx context.Context, opts backup.DumpOptions) (*backup.Summary, error) {
	return m.summary(m.Called(ctx, opts))
}

func (m *MockBackupService) Restore(ctx context.Context, opts backup.RestoreOptions) (*backup.Summary, error) {
	return m.summary(m.Called(ctx, opts))
}

func (m *MockBackupService) Export(ctx context.Context, opts backup.ExportOptions, w io.Writer) (*backup.Summary, error) {
	return m.summary(m.Called(ctx, opts, w))
}

func (m *MockBackupService) Import(ctx context.Context, opts backup.ImportOptions, r io.Reader) (*backup.Summary, error) {
	return m.summary(m.Called(ctx, opts, r))
}
