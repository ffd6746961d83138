package gdrive

import (
	"errors"
	"fmt"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

var ErrAuthentication = errors.New("authentication failed")

// Scopes are the OAuth2 scopes requested by 'authorise' and used by 'check'.
var Scopes = []string{
	drive.DriveReadonlyScope,
	sheets.SpreadsheetsReadonlyScope,
}

type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Session is an authenticated Google API session. It is created once per run
// and passed explicitly to the Drive and Sheets clients.
type Session struct {
	tokens oauth2.TokenSource
}

// OAuth2Config returns the OAuth2 client configuration for the Google
// endpoints.
func OAuth2Config(clientID, clientSecret, redirect string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirect,
		Scopes:       Scopes,
	}
}

// Authenticate exchanges the stored refresh token for an access token. Missing
// credentials or a failed exchange are reported as ErrAuthentication.
func Authenticate(ctx context.Context, credentials Credentials) (*Session, error) {
	return authenticate(ctx, credentials, google.Endpoint)
}

func authenticate(ctx context.Context, credentials Credentials, endpoint oauth2.Endpoint) (*Session, error) {
	if credentials.ClientID == "" || credentials.ClientSecret == "" || credentials.RefreshToken == "" {
		return nil, fmt.Errorf("%w (missing Google Drive credentials)", ErrAuthentication)
	}

	config := OAuth2Config(credentials.ClientID, credentials.ClientSecret, "")
	config.Endpoint = endpoint

	tokens := config.TokenSource(ctx, &oauth2.Token{RefreshToken: credentials.RefreshToken})
	if _, err := tokens.Token(); err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrAuthentication, err)
	}

	return &Session{
		tokens: tokens,
	}, nil
}

func (s *Session) TokenSource() oauth2.TokenSource {
	return s.tokens
}
