package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"golang.org/x/oauth2"

	"github.com/uhppoted/uhppoted-app-usercheck/config"
	"github.com/uhppoted/uhppoted-app-usercheck/gdrive"
)

var AuthoriseCmd = Authorise{
	credentials:  DEFAULT_CREDENTIALS,
	clientID:     "",
	clientSecret: "",
	port:         8080,
	debug:        false,
}

type Authorise struct {
	credentials  string
	clientID     string
	clientSecret string
	port         uint
	debug        bool
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises uhppoted-app-usercheck to read from Google Drive and Google Sheets"
}

func (cmd *Authorise) Usage() string {
	return "--client-id <id> --client-secret <secret>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --client-id <id> --client-secret <secret>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises uhppoted-app-usercheck to read from Google Drive and Google Sheets and stores the")
	fmt.Println("  refresh token in the credentials file used by the 'check' command")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-usercheck authorise --credentials "secrets.yaml" --client-id "1234.apps.googleusercontent.com" --client-secret "qwerty"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'secrets.yaml' file")
	flagset.StringVar(&cmd.clientID, "client-id", cmd.clientID, "OAuth2 client ID. Defaults to the client ID in the credentials file")
	flagset.StringVar(&cmd.clientSecret, "client-secret", cmd.clientSecret, "OAuth2 client secret. Defaults to the client secret in the credentials file")
	flagset.UintVar(&cmd.port, "port", cmd.port, "Local port for the OAuth2 redirect")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok {
			cmd.debug = options.Debug
		}
	}

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	secrets, err := config.Load(cmd.credentials)
	if err != nil {
		return err
	}

	if cmd.clientID != "" {
		secrets.Google.ClientID = cmd.clientID
	}

	if cmd.clientSecret != "" {
		secrets.Google.ClientSecret = cmd.clientSecret
	}

	if secrets.Google.ClientID == "" || secrets.Google.ClientSecret == "" {
		return fmt.Errorf("--client-id and --client-secret are required if not in %v", cmd.credentials)
	}

	token, err := cmd.authenticate(secrets.Google.ClientID, secrets.Google.ClientSecret)
	if err != nil {
		return fmt.Errorf("Authorisation error (%v)", err)
	} else if token == nil {
		return nil
	}

	if token.RefreshToken == "" {
		return fmt.Errorf("Authorisation error (no refresh token returned)")
	}

	secrets.Google.RefreshToken = token.RefreshToken
	if err := config.Save(cmd.credentials, secrets); err != nil {
		return err
	}

	fmt.Printf("Saved credentials to %s\n", cmd.credentials)

	return nil
}

func (cmd *Authorise) authenticate(clientID, clientSecret string) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%v", cmd.port))
	if err != nil {
		return nil, err
	}

	redirect := fmt.Sprintf("http://localhost:%v/", cmd.port)
	config := gdrive.OAuth2Config(clientID, clientSecret, redirect)
	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	// ... start HTTP server on localhost
	authorised := make(chan string, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		state := rq.FormValue("state")
		code := rq.FormValue("code")

		if cmd.debug {
			debugf("OAuth2 redirect  state:%v  code:%v", state, code != "")
		}

		if state != "state-token" || code == "" {
			http.Error(w, "Invalid authorisation response", http.StatusBadRequest)
			return
		}

		fmt.Fprintln(w, "Authorised - you can close this window")

		select {
		case authorised <- code:
		default:
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// ... open OAuth2 URL in browser
	if _, err := exec.Command(OPEN, url).CombinedOutput(); err != nil {
		fmt.Printf("Could not open authorisation page in your browser - please open the following link manually:\n\n  %v\n\n", url)
	}

	// ... wait for authorisation
	select {
	case <-interrupt:
		fmt.Printf("\n.. cancelled\n\n")
		return nil, nil

	case code := <-authorised:
		return config.Exchange(context.Background(), code)
	}
}
