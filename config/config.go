package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Secrets is the stored long-lived Google credentials, in the same shape as
// the 'secrets.yaml' file:
//
//	google_credentials:
//	  client_id: ...
//	  client_secret: ...
//	  refresh_token: ...
type Secrets struct {
	Google GoogleCredentials `yaml:"google_credentials"`
}

type GoogleCredentials struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
}

const (
	ENV_CLIENT_ID     = "GOOGLE_CLIENT_ID"
	ENV_CLIENT_SECRET = "GOOGLE_CLIENT_SECRET"
	ENV_REFRESH_TOKEN = "GOOGLE_REFRESH_TOKEN"
)

// Load reads the secrets file (if it exists) and then applies any
// GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REFRESH_TOKEN environment
// overrides. A .env file in the current directory is loaded first if present.
func Load(file string) (*Secrets, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file (%w)", err)
	}

	secrets := Secrets{}

	if file != "" {
		if bytes, err := os.ReadFile(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		} else if err == nil {
			if err := yaml.Unmarshal(bytes, &secrets); err != nil {
				return nil, fmt.Errorf("invalid secrets file %v (%w)", file, err)
			}
		}
	}

	override(&secrets.Google.ClientID, ENV_CLIENT_ID)
	override(&secrets.Google.ClientSecret, ENV_CLIENT_SECRET)
	override(&secrets.Google.RefreshToken, ENV_REFRESH_TOKEN)

	return &secrets, nil
}

// Save writes the secrets file, creating the directory if necessary. The file
// is only readable by the owner.
func Save(file string, secrets *Secrets) error {
	bytes, err := yaml.Marshal(secrets)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}

	return os.WriteFile(file, bytes, 0600)
}

func override(field *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*field = v
	}
}
