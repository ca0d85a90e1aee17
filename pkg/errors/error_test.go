package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidTicker, "invalid ticker")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidTicker, err.Code)
	suite.Equal("invalid ticker", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeNoData, "no data for %s", "PETR4.SA")
	suite.NotNil(err)
	suite.Equal(ErrCodeNoData, err.Code)
	suite.Equal("no data for PETR4.SA", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeWriteFailure, "failed to write file", cause)
	suite.Equal(ErrCodeWriteFailure, err.Code)
	suite.Equal("failed to write file", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("bad gateway")
	err := Wrapf(ErrCodeFetchFailure, cause, "failed to fetch %s", "VALE3.SA")
	suite.Equal(ErrCodeFetchFailure, err.Code)
	suite.Equal("failed to fetch VALE3.SA", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeDateOrder, "start date is after end date")
	suite.Equal("[103] start date is after end date", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeWriteFailure, "failed to write file", cause)
	suite.Equal("[702] failed to write file: permission denied", err.Error())
}

func (suite *ErrorTestSuite) TestDetail() {
	suite.Equal("dates cannot be in the future", New(ErrCodeFutureDate, "dates cannot be in the future").Detail())

	wrapped := Wrap(ErrCodeFetchFailure, "fetch failed", errors.New("HTTP 500"))
	suite.Equal("fetch failed: HTTP 500", wrapped.Detail())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeConnectionFailure, "could not connect", cause)
	suite.Equal(cause, err.Unwrap())
	suite.Nil(New(ErrCodeInvalidTicker, "x").Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	suite.Equal(ErrCodeMissingInput, GetCode(New(ErrCodeMissingInput, "missing")))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeConnectionFailure, "could not connect")
	err := Wrap(ErrCodeFetchFailure, "fetch failed", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeFetchFailure, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromStandardError() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeNoData, "no data")
	suite.True(HasCode(err, ErrCodeNoData))
	suite.False(HasCode(err, ErrCodeFetchFailure))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFetchFailure, "fetch failed", cause)
	suite.True(Is(err, cause))

	var typed *Error
	suite.True(As(err, &typed))
	suite.Equal(ErrCodeFetchFailure, typed.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeNoData)
	suite.Equal(ErrorCode(300), ErrCodeCatalogLoadFailure)
	suite.Equal(ErrorCode(700), ErrCodeConnectionFailure)
	suite.Equal(ErrorCode(800), ErrCodeInvalidConfiguration)
}

func (suite *ErrorTestSuite) TestErrorCodeString() {
	suite.Equal("InvalidTicker", ErrCodeInvalidTicker.String())
	suite.Equal("ConnectionFailure", ErrCodeConnectionFailure.String())
	suite.Equal("Unknown", ErrorCode(9999).String())
}
