package countrylib

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type HTTPErrorTestSuite struct {
	suite.Suite

	e *httpError
}

func (suite *HTTPErrorTestSuite) SetupTest() {
	suite.e = &httpError{}
}

func (suite *HTTPErrorTestSuite) TestNil() {
	var err *httpError

	suite.Equal("", err.Message())
	suite.Equal(http.StatusInternalServerError, err.StatusCode())
	suite.Nil(err.Unwrap())
	suite.Nil(errors.Unwrap(err))
	suite.Equal("", err.Error())

	data, e := json.Marshal(err)

	suite.NoError(e)
	suite.JSONEq("null", string(data))
}

func (suite *HTTPErrorTestSuite) TestMessage() {
	suite.Equal("", suite.e.Message())

	suite.e.message = "hello"

	suite.Equal("hello", suite.e.Message())
}

func (suite *HTTPErrorTestSuite) TestStatusCode() {
	suite.Equal(http.StatusInternalServerError, suite.e.StatusCode())

	suite.e.statusCode = http.StatusServiceUnavailable

	suite.Equal(http.StatusServiceUnavailable, suite.e.StatusCode())
}

func (suite *HTTPErrorTestSuite) TestUnwrap() {
	suite.Nil(suite.e.Unwrap())
	suite.Nil(errors.Unwrap(suite.e))

	suite.e.err = io.EOF

	suite.Equal(io.EOF, suite.e.Unwrap())
	suite.True(errors.Is(suite.e, io.EOF))
}

func (suite *HTTPErrorTestSuite) TestError() {
	suite.EqualError(suite.e, "")

	suite.e.message = "message"

	suite.EqualError(suite.e, "message")

	suite.e.message = ""
	suite.e.err = io.EOF

	suite.EqualError(suite.e, "EOF")

	suite.e.message = "msg"

	suite.Contains(suite.e.Error(), "msg")
	suite.Contains(suite.e.Error(), "EOF")
}

func (suite *HTTPErrorTestSuite) TestJSON() {
	data, err := json.Marshal(suite.e)

	suite.NoError(err)
	suite.JSONEq(`{"error": ""}`, string(data))

	suite.e.message = "Invalid IPv4"
	suite.e.err = io.EOF
	data, err = json.Marshal(suite.e)

	suite.NoError(err)
	suite.JSONEq(`{"error": "Invalid IPv4"}`, string(data))
}

func TestHTTPError(t *testing.T) {
	suite.Run(t, &HTTPErrorTestSuite{})
}

type ResolverErrorsTestSuite struct {
	suite.Suite
}

func (suite *ResolverErrorsTestSuite) TestProviderError() {
	err := &ProviderError{Provider: "ipstack", Err: io.EOF}

	suite.True(errors.Is(err, io.EOF))
	suite.Contains(err.Error(), "ipstack")
	suite.Contains(err.Error(), "EOF")
}

func (suite *ResolverErrorsTestSuite) TestVendorUnavailable() {
	var err error = &VendorUnavailableError{
		Causes: []error{io.EOF, ErrCapacityExhausted},
	}

	suite.EqualError(err, VendorUnavailableMessage)
	suite.Contains(err.Error(), "Unable to fetch country information")

	target := &VendorUnavailableError{}

	suite.True(errors.As(err, &target))
	suite.Len(target.Causes, 2)
}

func TestResolverErrors(t *testing.T) {
	suite.Run(t, &ResolverErrorsTestSuite{})
}
