package countrylib_test

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"
)

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) Lookup(ctx context.Context, ip net.IP) (string, error) {
	args := m.Called(ctx, ip)

	return args.String(0), args.Error(1)
}

func (m *ProviderMock) Name() string {
	return m.Called().String(0)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(ip net.IP, name string, err error) {
	m.Called(ip, name, err)
}

func (m *LoggerMock) CapacityExhausted(ip net.IP, name string) {
	m.Called(ip, name)
}

func (m *LoggerMock) RateLimitUpdated(name string, limit int) {
	m.Called(name, limit)
}
