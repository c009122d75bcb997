package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-access-token-ttl access token lifetime (e.g., "15m")
//	-refresh-token-ttl refresh token lifetime (e.g., "168h")
//	-reset-token-ttl password reset token lifetime (e.g., "1h")
//	-first-superuser initial superuser email
//	-first-superuser-password initial superuser password
//	-frontend-host base URL used in password reset links
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-auth-rate-limit login/recovery requests per minute per IP
//	-trust-proxy-headers take the client IP from X-Forwarded-For / X-Real-IP
//	-smtp-host, -smtp-port, -smtp-user, -smtp-password, -smtp-from SMTP settings
//	-cleanup-interval expired token cleanup interval
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var accessTokenTTL, refreshTokenTTL, resetTokenTTL time.Duration
	var firstSuperuser, firstSuperuserPassword string
	var frontendHost string
	var requestTimeout time.Duration
	var authRateLimit int
	var trustProxyHeaders bool
	var smtpHost, smtpUser, smtpPassword, smtpFrom string
	var smtpPort int
	var cleanupInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&accessTokenTTL, "access-token-ttl", 0, "Access token lifetime (e.g., 15m)")
	fs.DurationVar(&refreshTokenTTL, "refresh-token-ttl", 0, "Refresh token lifetime (e.g., 168h)")
	fs.DurationVar(&resetTokenTTL, "reset-token-ttl", 0, "Password reset token lifetime (e.g., 1h)")
	fs.StringVar(&firstSuperuser, "first-superuser", "", "Initial superuser email")
	fs.StringVar(&firstSuperuserPassword, "first-superuser-password", "", "Initial superuser password")
	fs.StringVar(&frontendHost, "frontend-host", "", "Frontend base URL for password reset links")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&authRateLimit, "auth-rate-limit", 0, "Login/recovery requests per minute per IP")
	fs.BoolVar(&trustProxyHeaders, "trust-proxy-headers", false, "Take client IP from proxy headers")
	fs.StringVar(&smtpHost, "smtp-host", "", "SMTP host")
	fs.IntVar(&smtpPort, "smtp-port", 0, "SMTP port")
	fs.StringVar(&smtpUser, "smtp-user", "", "SMTP user")
	fs.StringVar(&smtpPassword, "smtp-password", "", "SMTP password")
	fs.StringVar(&smtpFrom, "smtp-from", "", "SMTP sender address")
	fs.DurationVar(&cleanupInterval, "cleanup-interval", 0, "Expired token cleanup interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:           tokenSignKey,
			TokenIssuer:            tokenIssuer,
			AccessTokenTTL:         accessTokenTTL,
			RefreshTokenTTL:        refreshTokenTTL,
			ResetTokenTTL:          resetTokenTTL,
			FirstSuperuserEmail:    firstSuperuser,
			FirstSuperuserPassword: firstSuperuserPassword,
			FrontendHost:           frontendHost,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:       serverAddress.String(),
			GRPCAddress:       grpcServerAddress.String(),
			RequestTimeout:    requestTimeout,
			AuthRateLimit:     authRateLimit,
			TrustProxyHeaders: trustProxyHeaders,
		},
		Adapter: Adapter{
			SMTP: SMTP{
				Host:     smtpHost,
				Port:     smtpPort,
				User:     smtpUser,
				Password: smtpPassword,
				From:     smtpFrom,
			},
		},
		Workers: Workers{
			CleanupInterval: cleanupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
