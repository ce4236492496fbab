package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type KeyValueMock struct {
	mock.Mock
}

func (o *KeyValueMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := o.Called(ctx, key)
	var value []byte
	if args.Get(0) != nil {
		value = args.Get(0).([]byte)
	}
	return value, args.Bool(1), args.Error(2)
}

func (o *KeyValueMock) Set(ctx context.Context, key string, value []byte) error {
	args := o.Called(ctx, key, value)
	return args.Error(0)
}

func (o *KeyValueMock) Close() error {
	return o.Called().Error(0)
}

// NewKeyValueMock returns a mock primed with empty slots and accepting
// writes, the first-run state.
func NewKeyValueMock() *KeyValueMock {
	kvMock := &KeyValueMock{}

	kvMock.On("Get", mock.Anything, ColumnsKey).Return(nil, false, nil)
	kvMock.On("Get", mock.Anything, RowsKey).Return(nil, false, nil)
	kvMock.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	kvMock.On("Close").Return(nil)

	return kvMock
}
