package providers_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/9seconds/ipcountry/countrylib"
	"github.com/9seconds/ipcountry/providers"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

type MockedIPAPITestSuite struct {
	MockedProviderTestSuite
}

func (suite *MockedIPAPITestSuite) SetupTest() {
	suite.MockedProviderTestSuite.SetupTest()

	suite.prov = providers.NewIPAPI(suite.http)
}

func (suite *MockedIPAPITestSuite) TestName() {
	suite.Equal(providers.NameIPAPI, suite.prov.Name())
}

func (suite *MockedIPAPITestSuite) TestLookupClosedContext() {
	ctx, cancel := context.WithCancel(context.Background())

	cancel()

	_, err := suite.prov.Lookup(ctx, net.ParseIP("23.22.13.113"))

	suite.Error(err)
}

func (suite *MockedIPAPITestSuite) TestLookupFailed() {
	httpmock.RegisterResponder("GET",
		"http://ip-api.com/json/23.22.13.113",
		httpmock.NewStringResponder(http.StatusTooManyRequests, ""))

	_, err := suite.prov.Lookup(context.Background(),
		net.ParseIP("23.22.13.113"))

	providerErr := &countrylib.ProviderError{}

	suite.True(errors.As(err, &providerErr))
	suite.Equal(providers.NameIPAPI, providerErr.Provider)
}

func (suite *MockedIPAPITestSuite) TestLookupBadJSON() {
	httpmock.RegisterResponder("GET",
		"http://ip-api.com/json/23.22.13.113",
		httpmock.NewStringResponder(http.StatusOK, `{[`))

	_, err := suite.prov.Lookup(context.Background(),
		net.ParseIP("23.22.13.113"))

	suite.Error(err)
}

func (suite *MockedIPAPITestSuite) TestLookupStatusFail() {
	httpmock.RegisterResponder("GET",
		"http://ip-api.com/json/192.168.1.1",
		httpmock.NewStringResponder(http.StatusOK, `{
  "status": "fail",
  "message": "private range"
}`))

	_, err := suite.prov.Lookup(context.Background(),
		net.ParseIP("192.168.1.1"))

	suite.Error(err)
	suite.Contains(err.Error(), "private range")
}

func (suite *MockedIPAPITestSuite) TestLookupNoCountry() {
	httpmock.RegisterResponder("GET",
		"http://ip-api.com/json/23.22.13.113",
		httpmock.NewStringResponder(http.StatusOK, `{"status": "success"}`))

	_, err := suite.prov.Lookup(context.Background(),
		net.ParseIP("23.22.13.113"))

	suite.True(errors.Is(err, providers.ErrNoCountry))
}

func (suite *MockedIPAPITestSuite) TestLookupOk() {
	httpmock.RegisterResponder("GET",
		"http://ip-api.com/json/23.22.13.113",
		httpmock.NewStringResponder(http.StatusOK, `{
  "status": "success",
  "country": "Mexico"
}`))

	result, err := suite.prov.Lookup(context.Background(),
		net.ParseIP("23.22.13.113"))

	suite.NoError(err)
	suite.Equal("Mexico", result)
}

type IntegrationIPAPITestSuite struct {
	ProviderTestSuite
}

func (suite *IntegrationIPAPITestSuite) SetupTest() {
	suite.ProviderTestSuite.SetupTest()

	suite.prov = providers.NewIPAPI(suite.http)
}

func (suite *IntegrationIPAPITestSuite) TestLookup() {
	result, err := suite.prov.Lookup(context.Background(),
		net.ParseIP("23.22.13.113"))

	suite.NoError(err)
	suite.Equal("United States", result)
}

func TestIPAPI(t *testing.T) {
	suite.Run(t, &MockedIPAPITestSuite{})
}

func TestIntegrationIPAPI(t *testing.T) {
	if testing.Short() || !integrationTestsEnabled() {
		t.Skip("Skipped because integration tests are disabled")
		return
	}

	suite.Run(t, &IntegrationIPAPITestSuite{})
}
