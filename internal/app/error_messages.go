// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// auth server handlers and the command-line client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or printed by the client. Keeping them in one place
// ensures consistent wording throughout the API.
package app

const (
	// MsgInternalServerError replaces the message of every unexpected
	// server-side failure so that internals never reach the client.
	MsgInternalServerError = "internal server error"

	// MsgLoggedOut confirms that a refresh token was revoked.
	MsgLoggedOut = "Logged out"

	// MsgPasswordRecoverySent is returned for every password recovery
	// request, whether or not the email belongs to an account.
	MsgPasswordRecoverySent = "Password recovery email sent"

	// MsgPasswordUpdated confirms a password change or reset.
	MsgPasswordUpdated = "Password updated successfully"

	// MsgUserDeactivated confirms that a superuser deactivated an account.
	MsgUserDeactivated = "User deactivated successfully"
)
