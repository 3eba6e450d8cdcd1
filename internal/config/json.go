package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		Env                string   `json:"env"`
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		CookieDuration     Duration `json:"cookie_duration"`
		PasswordHashCost   int      `json:"password_hash_cost"`
		ResetTokenDuration Duration `json:"reset_token_duration"`
		Version            string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimit      struct {
			Requests int      `json:"requests"`
			Window   Duration `json:"window"`
		} `json:"rate_limit,omitempty"`
	} `json:"server,omitempty"`

	Adapter struct {
		RequestTimeout Duration `json:"request_timeout"`
		Mail           struct {
			URL    string `json:"url"`
			APIKey string `json:"api_key"`
			From   string `json:"from"`
		} `json:"mail,omitempty"`
		Payment struct {
			URL       string `json:"url"`
			SecretKey string `json:"secret_key"`
			Currency  string `json:"currency"`
		} `json:"payment,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ResetTokenSweepInterval Duration `json:"reset_token_sweep_interval"`
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
			Env:                jsonCfg.App.Env,
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			CookieDuration:     time.Duration(jsonCfg.App.CookieDuration),
			PasswordHashCost:   jsonCfg.App.PasswordHashCost,
			ResetTokenDuration: time.Duration(jsonCfg.App.ResetTokenDuration),
			Version:            jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimit: RateLimit{
				Requests: jsonCfg.Server.RateLimit.Requests,
				Window:   time.Duration(jsonCfg.Server.RateLimit.Window),
			},
		},
		Adapter: Adapter{
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Mail: Mail{
				URL:    jsonCfg.Adapter.Mail.URL,
				APIKey: jsonCfg.Adapter.Mail.APIKey,
				From:   jsonCfg.Adapter.Mail.From,
			},
			Payment: Payment{
				URL:       jsonCfg.Adapter.Payment.URL,
				SecretKey: jsonCfg.Adapter.Payment.SecretKey,
				Currency:  jsonCfg.Adapter.Payment.Currency,
			},
		},
		Workers: Workers{
			ResetTokenSweepInterval: time.Duration(jsonCfg.Workers.ResetTokenSweepInterval),
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
