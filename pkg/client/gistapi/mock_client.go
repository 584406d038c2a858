package gistapi

import (
	"context"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	mock.Mock
}

// NewMockClient creates a new MockClient instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// List mocks listing gists.
func (m *MockClient) List(ctx context.Context, owner string) ([]v1alpha1.Gist, error) {
	args := m.Called(ctx, owner)

	result, ok := args.Get(0).([]v1alpha1.Gist)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Get mocks fetching a gist.
func (m *MockClient) Get(ctx context.Context, id string) (*v1alpha1.Gist, error) {
	args := m.Called(ctx, id)

	return gistResult(args)
}

// Create mocks creating a gist.
func (m *MockClient) Create(
	ctx context.Context,
	description string,
	visibility v1alpha1.Visibility,
	files []v1alpha1.File,
) (*v1alpha1.Gist, error) {
	args := m.Called(ctx, description, visibility, files)

	return gistResult(args)
}

// Update mocks updating gist files.
func (m *MockClient) Update(ctx context.Context, id string, files []v1alpha1.File) (*v1alpha1.Gist, error) {
	args := m.Called(ctx, id, files)

	return gistResult(args)
}

// UpdateDescription mocks updating a gist description.
func (m *MockClient) UpdateDescription(ctx context.Context, id, description string) (*v1alpha1.Gist, error) {
	args := m.Called(ctx, id, description)

	return gistResult(args)
}

// Delete mocks deleting a gist.
func (m *MockClient) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Fork mocks forking a gist.
func (m *MockClient) Fork(ctx context.Context, id string) (*v1alpha1.Gist, error) {
	args := m.Called(ctx, id)

	return gistResult(args)
}

func gistResult(args mock.Arguments) (*v1alpha1.Gist, error) {
	result, ok := args.Get(0).(*v1alpha1.Gist)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
