// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/debug"
	"github.com/adrixdax/FMProKit2/internal/decode"
	"github.com/adrixdax/FMProKit2/internal/errs"
	"github.com/adrixdax/FMProKit2/internal/models"
	"github.com/adrixdax/FMProKit2/internal/transport"
)

var errEmptyToken = errors.New("session response carried no token")

// SetCredentials replaces the Basic credentials. A token fetched for the previous pair
// is dropped.
func (e *Executor) SetCredentials(username, password string) {
	e.creds.set(username, password)
	e.logger.Debug().
		Str("username", username).
		Str("password", debug.MaskPassword(password)).
		Msg("credentials updated")
}

// AuthState reports where the executor is in the token lifecycle.
func (e *Executor) AuthState() AuthState {
	return e.creds.state()
}

// FetchToken trades the current Basic credentials for a Data API session token. The
// token is kept for later requests only when the credentials did not change while the
// exchange was in flight.
func (e *Executor) FetchToken(ctx context.Context) (string, error) {
	const op = "client.FetchToken"

	snapshot := e.creds.load()
	if !snapshot.hasBasic() {
		return "", errs.Input(op, errs.ErrCredentialsMissing)
	}

	target, err := absoluteURL(e.conn.SessionURL())
	if err != nil {
		return "", errs.E(errs.InvalidURL, op, err)
	}
	req, err := http.NewRequestWithContext(ctx, constants.POST, target, bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", errs.E(errs.InvalidURL, op, err)
	}
	req.Header.Set(constants.ContentType, constants.ContentTypeJSON)
	req.Header.Set(constants.UserAgent, e.userAgent)
	req.SetBasicAuth(snapshot.Username, snapshot.Password)

	body, err := e.transport.Send(req)
	if err != nil {
		if transport.StatusCode(err) == http.StatusUnauthorized {
			err = errs.E(errs.AuthorizationFailure, op, err)
		} else {
			err = errs.E(errs.TokenFetchFailure, op, err)
		}
		return "", err
	}

	session, err := decode.Decode[models.SessionResponse](body, decode.Object)
	if err == nil && session.Response.Token == "" {
		err = errEmptyToken
	}
	if err != nil {
		return "", errs.E(errs.TokenFetchFailure, op, err)
	}

	token := session.Response.Token
	next := &Credentials{Username: snapshot.Username, Password: snapshot.Password, Token: token}
	if !e.creds.swap(snapshot, next) {
		e.logger.Debug().Msg("credentials changed during token fetch, token discarded")
		return token, nil
	}
	e.logger.Debug().Str("token", debug.MaskToken(token)).Msg("session token stored")
	return token, nil
}

// Logout closes the Data API session and falls back to Basic credentials.
func (e *Executor) Logout(ctx context.Context) error {
	const op = "client.Logout"

	snapshot := e.creds.load()
	if !snapshot.hasToken() {
		return errs.Input(op, errs.ErrNoSession)
	}

	target, err := absoluteURL(e.conn.SessionURL() + "/" + snapshot.Token)
	if err != nil {
		return errs.E(errs.InvalidURL, op, err)
	}
	req, err := http.NewRequestWithContext(ctx, constants.DELETE, target, nil)
	if err != nil {
		return errs.E(errs.InvalidURL, op, err)
	}
	req.Header.Set(constants.UserAgent, e.userAgent)

	if _, err := e.transport.Send(req); err != nil {
		return errs.E(errs.RequestFailure, op, err)
	}

	e.creds.swap(snapshot, &Credentials{Username: snapshot.Username, Password: snapshot.Password})
	return nil
}
