// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package client

import "sync/atomic"

// AuthState is the position in the token lifecycle.
type AuthState int

const (
	Unauthenticated AuthState = iota
	CredentialsSet
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case CredentialsSet:
		return "credentials-set"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Credentials is an immutable snapshot. Replacing credentials swaps the whole value,
// so a request reads either the old pair or the new one, never a mix.
type Credentials struct {
	Username string
	Password string
	Token    string
}

func (c *Credentials) hasBasic() bool {
	return c != nil && c.Username != ""
}

func (c *Credentials) hasToken() bool {
	return c != nil && c.Token != ""
}

type credentialStore struct {
	current atomic.Pointer[Credentials]
}

func (s *credentialStore) load() *Credentials {
	return s.current.Load()
}

// set replaces the pair and drops any token fetched for the previous one.
func (s *credentialStore) set(username, password string) {
	s.current.Store(&Credentials{Username: username, Password: password})
}

// swap stores next only if old is still current.
func (s *credentialStore) swap(old, next *Credentials) bool {
	return s.current.CompareAndSwap(old, next)
}

func (s *credentialStore) state() AuthState {
	c := s.load()
	switch {
	case c.hasToken():
		return Authenticated
	case c.hasBasic():
		return CredentialsSet
	default:
		return Unauthenticated
	}
}
