// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/adrixdax/FMProKit2/internal/errs"
	"github.com/adrixdax/FMProKit2/internal/transport"
)

const sessionPath = "/fmi/data/vLatest/databases/Contacts/sessions"

type SessionTestSuite struct {
	suite.Suite
	server     *httptest.Server
	exec       *Executor
	status     int
	reply      string
	logins     int32
	logouts    int32
	lastBearer atomic.Value
}

func (s *SessionTestSuite) SetupTest() {
	s.status = http.StatusOK
	s.reply = `{"response":{"token":"a1b2c3d4e5f6a7b8c9d0"},"messages":[{"code":"0","message":"OK"}]}`
	atomic.StoreInt32(&s.logins, 0)
	atomic.StoreInt32(&s.logouts, 0)
	s.lastBearer.Store("")

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == sessionPath:
			atomic.AddInt32(&s.logins, 1)
			user, pass, ok := r.BasicAuth()
			if !ok || user != "admin" || pass != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"messages":[{"code":"212","message":"Invalid user account and/or password"}]}`))
				return
			}
			w.WriteHeader(s.status)
			w.Write([]byte(s.reply))
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, sessionPath+"/"):
			atomic.AddInt32(&s.logouts, 1)
			w.Write([]byte(`{"response":{},"messages":[{"code":"0","message":"OK"}]}`))
		default:
			s.lastBearer.Store(r.Header.Get("Authorization"))
			w.Write([]byte(`{"value":[]}`))
		}
	}))

	conn := NewConnection(strings.TrimPrefix(s.server.URL, "http://"), V4, "Contacts")
	conn.Scheme = "http"
	s.exec = New(conn, transport.NewHTTP(s.server.Client(), zerolog.Nop()))
}

func (s *SessionTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *SessionTestSuite) TestFetchTokenStoresToken() {
	s.exec.SetCredentials("admin", "secret")
	s.Equal(CredentialsSet, s.exec.AuthState())

	token, err := s.exec.FetchToken(context.Background())
	s.Require().NoError(err)
	s.Equal("a1b2c3d4e5f6a7b8c9d0", token)
	s.Equal(Authenticated, s.exec.AuthState())

	_, err = s.exec.Do(context.Background(), Request{Method: "GET", Endpoint: "Person"})
	s.Require().NoError(err)
	s.Equal("Bearer a1b2c3d4e5f6a7b8c9d0", s.lastBearer.Load())
}

func (s *SessionTestSuite) TestFetchTokenUnauthorized() {
	s.exec.SetCredentials("admin", "wrong")

	_, err := s.exec.FetchToken(context.Background())
	s.ErrorIs(err, errs.ErrAuthorization)
	s.Equal(errs.AuthorizationFailure, errs.KindOf(err))
	s.Equal(CredentialsSet, s.exec.AuthState())
}

func (s *SessionTestSuite) TestFetchTokenServerError() {
	s.exec.SetCredentials("admin", "secret")
	s.status = http.StatusInternalServerError

	_, err := s.exec.FetchToken(context.Background())
	s.ErrorIs(err, errs.ErrTokenFetch)
}

func (s *SessionTestSuite) TestFetchTokenMalformedResponse() {
	s.exec.SetCredentials("admin", "secret")

	for _, reply := range []string{`not json`, `{"response":{}}`} {
		s.reply = reply
		_, err := s.exec.FetchToken(context.Background())
		s.ErrorIs(err, errs.ErrTokenFetch, reply)
	}
	s.Equal(CredentialsSet, s.exec.AuthState())
}

func (s *SessionTestSuite) TestFetchTokenWithoutCredentials() {
	_, err := s.exec.FetchToken(context.Background())
	s.ErrorIs(err, errs.ErrInvalidInput)
	s.ErrorIs(err, errs.ErrCredentialsMissing)
	s.Zero(atomic.LoadInt32(&s.logins))
}

func (s *SessionTestSuite) TestLogout() {
	s.ErrorIs(s.exec.Logout(context.Background()), errs.ErrNoSession)

	s.exec.SetCredentials("admin", "secret")
	_, err := s.exec.FetchToken(context.Background())
	s.Require().NoError(err)

	s.Require().NoError(s.exec.Logout(context.Background()))
	s.Equal(int32(1), atomic.LoadInt32(&s.logouts))
	s.Equal(CredentialsSet, s.exec.AuthState())
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func TestFetchToken_CredentialsChangedInFlight(t *testing.T) {
	var exec *Executor
	stub := transport.Func(func(req *http.Request) ([]byte, error) {
		exec.SetCredentials("someone-else", "pw")
		return []byte(`{"response":{"token":"stale-token-0001"}}`), nil
	})
	exec = New(testConnection(), stub)
	exec.SetCredentials("admin", "secret")

	token, err := exec.FetchToken(context.Background())
	if err != nil {
		t.Fatalf("FetchToken() error = %v", err)
	}
	if token != "stale-token-0001" {
		t.Errorf("FetchToken() = %q", token)
	}
	if got := exec.AuthState(); got != CredentialsSet {
		t.Errorf("AuthState() = %v, want %v", got, CredentialsSet)
	}
	if c := exec.creds.load(); c.Username != "someone-else" || c.Token != "" {
		t.Errorf("credentials = %+v, want the replaced pair without token", c)
	}
}
