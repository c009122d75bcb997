package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file. Durations accept strings such as "15m".
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey           string   `json:"token_sign_key"`
		TokenIssuer            string   `json:"token_issuer"`
		AccessTokenTTL         Duration `json:"access_token_ttl"`
		RefreshTokenTTL        Duration `json:"refresh_token_ttl"`
		ResetTokenTTL          Duration `json:"reset_token_ttl"`
		FirstSuperuserEmail    string   `json:"first_superuser"`
		FirstSuperuserPassword string   `json:"first_superuser_password"`
		FrontendHost           string   `json:"frontend_host"`
		Version                string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		GRPCAddress       string   `json:"grpc_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		AuthRateLimit     int      `json:"auth_rate_limit"`
		TrustProxyHeaders bool     `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`

	Adapter struct {
		SMTP struct {
			Host     string `json:"host"`
			Port     int    `json:"port"`
			User     string `json:"user"`
			Password string `json:"password"`
			From     string `json:"from"`
			FromName string `json:"from_name"`
			TLS      bool   `json:"tls"`
		} `json:"smtp,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		MailQueueSize   int      `json:"mail_queue_size"`
		CleanupInterval Duration `json:"cleanup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:           jsonCfg.App.TokenSignKey,
			TokenIssuer:            jsonCfg.App.TokenIssuer,
			AccessTokenTTL:         time.Duration(jsonCfg.App.AccessTokenTTL),
			RefreshTokenTTL:        time.Duration(jsonCfg.App.RefreshTokenTTL),
			ResetTokenTTL:          time.Duration(jsonCfg.App.ResetTokenTTL),
			FirstSuperuserEmail:    jsonCfg.App.FirstSuperuserEmail,
			FirstSuperuserPassword: jsonCfg.App.FirstSuperuserPassword,
			FrontendHost:           jsonCfg.App.FrontendHost,
			Version:                jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			GRPCAddress:       jsonCfg.Server.GRPCAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			AuthRateLimit:     jsonCfg.Server.AuthRateLimit,
			TrustProxyHeaders: jsonCfg.Server.TrustProxyHeaders,
		},
		Adapter: Adapter{
			SMTP: SMTP{
				Host:     jsonCfg.Adapter.SMTP.Host,
				Port:     jsonCfg.Adapter.SMTP.Port,
				User:     jsonCfg.Adapter.SMTP.User,
				Password: jsonCfg.Adapter.SMTP.Password,
				From:     jsonCfg.Adapter.SMTP.From,
				FromName: jsonCfg.Adapter.SMTP.FromName,
				TLS:      jsonCfg.Adapter.SMTP.TLS,
			},
		},
		Workers: Workers{
			MailQueueSize:   jsonCfg.Workers.MailQueueSize,
			CleanupInterval: time.Duration(jsonCfg.Workers.CleanupInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
