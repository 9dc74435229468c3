package providers_test

import (
	"net/http"
	"os"
	"time"

	"github.com/9seconds/ipcountry/countrylib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

const integrationEnvVar = "IPCOUNTRY_INTEGRATION_TESTS"

type ProviderTestSuite struct {
	suite.Suite

	http countrylib.HTTPClient
	prov countrylib.Provider
}

func (suite *ProviderTestSuite) SetupTest() {
	suite.http = countrylib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100)
}

type MockedProviderTestSuite struct {
	ProviderTestSuite
}

func (suite *MockedProviderTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProviderTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.Reset()
}

func integrationTestsEnabled() bool {
	return os.Getenv(integrationEnvVar) != ""
}
