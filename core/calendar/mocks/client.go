package mocks

import (
	"context"
	"time"

	"rinksync/core/event"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of calendar.Client
type Client struct {
	mock.Mock
}

func (m *Client) ListWindow(ctx context.Context, from, to time.Time) ([]event.Target, error) {
	args := m.Called(ctx, from, to)
	if targets, ok := args.Get(0).([]event.Target); ok {
		return targets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Create(ctx context.Context, desired event.Target) error {
	args := m.Called(ctx, desired)
	return args.Error(0)
}

func (m *Client) Update(ctx context.Context, desired event.Target) error {
	args := m.Called(ctx, desired)
	return args.Error(0)
}

func (m *Client) Delete(ctx context.Context, desired event.Target) error {
	args := m.Called(ctx, desired)
	return args.Error(0)
}
