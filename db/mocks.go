package db

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func (o *SessionMock) ExecuteIter(_ context.Context, query string, options *QueryOptions,
	values ...interface{}) (ResultSet, error) {
	args := o.Called(query, options, values)
	rs, _ := args.Get(0).(ResultSet)
	return rs, args.Error(1)
}

type ResultMock struct {
	mock.Mock
}

func (o *ResultMock) PageState() string {
	return o.Called().String(0)
}

func (o *ResultMock) Values() []map[string]interface{} {
	args := o.Called()
	return args.Get(0).([]map[string]interface{})
}

// NewResultMock returns a result set holding rows
func NewResultMock(rows ...map[string]interface{}) *ResultMock {
	result := &ResultMock{}
	result.On("PageState").Return("")
	result.On("Values").Return(rows)
	return result
}

// NewSessionMock returns a session answering every select with rows
func NewSessionMock(rows ...map[string]interface{}) *SessionMock {
	session := &SessionMock{}
	session.On("ExecuteIter", mock.Anything, mock.Anything, mock.Anything).Return(NewResultMock(rows...), nil)
	return session
}
