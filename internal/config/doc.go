// Package config loads the settings of the auth server: token signing and
// lifetimes, the first superuser, the database DSN, listen addresses, SMTP
// and background workers.
//
// Sources are merged in this order, later non-zero fields winning:
//  0. Built-in defaults ([Defaults])
//  1. Environment variables (APP_*, STORAGE_DB_*, SERVER_*, ADAPTER_SMTP_*, WORKERS_*)
//  2. Command-line flags
//  3. JSON config file named by CONFIG, -c or -config
//
// The merged result is validated before [GetStructuredConfig] returns it.
package config
