package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/api/option"

	"github.com/uhppoted/uhppoted-app-usercheck/audit"
	"github.com/uhppoted/uhppoted-app-usercheck/config"
	"github.com/uhppoted/uhppoted-app-usercheck/gdrive"
	"github.com/uhppoted/uhppoted-app-usercheck/reference"
	"github.com/uhppoted/uhppoted-app-usercheck/report"
	"github.com/uhppoted/uhppoted-app-usercheck/workbook"
)

var CheckCmd = Check{
	credentials:    DEFAULT_CREDENTIALS,
	url:            "",
	reference:      "",
	referenceURL:   "",
	referenceRange: "",
	workdir:        "",
	nopreview:      false,
	debug:          false,
	out:            os.Stdout,
}

type Check struct {
	credentials    string
	url            string
	reference      string
	referenceURL   string
	referenceRange string
	workdir        string
	nopreview      bool
	debug          bool
	out            io.Writer
}

func (cmd *Check) Name() string {
	return "check"
}

func (cmd *Check) Description() string {
	return "Checks the user IDs in the workbooks in a Google Drive 'summary' folder against a reference list"
}

func (cmd *Check) Usage() string {
	return "--url <folder> --reference <file>"
}

func (cmd *Check) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] check [options] --url <URL> --reference <CSV file>\n", APP)
	fmt.Println()
	fmt.Println("  Checks the user IDs in the workbooks in the 'summary' subfolder of a Google Drive folder against")
	fmt.Println("  the users in a reference CSV file (columns 'algo', 'server' and 'userId').")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-usercheck check --url "https://drive.google.com/drive/folders/1AbCdEfGhIjKlMnOpQrStUvWxYz" \`)
	fmt.Println(`                                 --reference "running-users.csv"`)
	fmt.Println()
	fmt.Println(`    uhppoted-app-usercheck --debug check --credentials "secrets.yaml" \`)
	fmt.Println(`                                         --url "https://drive.google.com/drive/folders/1AbCdEfGhIjKlMnOpQrStUvWxYz" \`)
	fmt.Println(`                                         --reference-url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                         --reference-range "Running!A1:C"`)
	fmt.Println()
}

func (cmd *Check) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("check", flag.ExitOnError)

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'secrets.yaml' file with the stored Google credentials")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Google Drive folder link")
	flagset.StringVar(&cmd.reference, "reference", cmd.reference, "Reference CSV file with 'algo', 'server' and 'userId' columns")
	flagset.StringVar(&cmd.referenceURL, "reference-url", cmd.referenceURL, "Google Sheets spreadsheet URL for the reference list (alternative to --reference)")
	flagset.StringVar(&cmd.referenceRange, "reference-range", cmd.referenceRange, "Spreadsheet range for the reference list e.g. 'Running!A1:C'")
	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for downloaded workbooks. Defaults to the system temporary directory")
	flagset.BoolVar(&cmd.nopreview, "no-preview", cmd.nopreview, "Disables the reference list preview")

	return flagset
}

func (cmd *Check) Execute(args ...any) error {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok {
			cmd.debug = options.Debug
		}
	}

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	ctx := context.Background()
	sink := report.NewConsole(cmd.out)

	folder, err := gdrive.ResolveFolderID(cmd.url)
	if err != nil {
		sink.Emit(audit.Finding{Severity: audit.Error, Message: "Invalid Google Drive folder link", Err: err})
		return err
	}

	sink.Emit(audit.Finding{Severity: audit.Success, Message: "Valid link!"})

	if cmd.debug {
		debugf("Folder - ID:%s  reference:%s%s", folder, cmd.reference, cmd.referenceURL)
	}

	// ... reference list from file
	var rows []reference.Row
	if cmd.reference != "" {
		if rows, err = readCSV(cmd.reference); err != nil {
			sink.Emit(audit.Finding{Severity: audit.Error, Message: fmt.Sprintf("CSV error: %v", err), Err: err})
			return err
		}
	}

	// ... authenticate
	session, err := cmd.authenticate(ctx)
	if err != nil {
		sink.Emit(audit.Finding{Severity: audit.Error, Message: fmt.Sprintf("Authentication failed: %v", err), Err: err})
		return err
	}

	sink.Emit(audit.Finding{Severity: audit.Success, Message: "Google Drive authenticated!"})

	// ... reference list from Google Sheets
	if cmd.referenceURL != "" {
		if rows, err = readSheet(ctx, session, cmd.referenceURL, cmd.referenceRange); err != nil {
			sink.Emit(audit.Finding{Severity: audit.Error, Message: fmt.Sprintf("Reference sheet error: %v", err), Err: err})
			return err
		}
	}

	groups, err := reference.Build(rows)
	if err != nil {
		sink.Emit(audit.Finding{Severity: audit.Error, Message: fmt.Sprintf("CSV error: %v", err), Err: err})
		return err
	}

	infof("Reference list: %v rows in %v algo/server groups", len(rows), groups.Len())

	if !cmd.nopreview {
		report.Preview(cmd.out, rows, groups)
	}

	// ... process folder
	drive, err := gdrive.NewDrive(ctx, logger, option.WithTokenSource(session.TokenSource()))
	if err != nil {
		sink.Emit(audit.Finding{Severity: audit.Error, Message: fmt.Sprintf("Google Drive error: %v", err), Err: err})
		return err
	}

	auditor := audit.Auditor{
		Drive:     drive,
		Load:      workbook.Load,
		Reference: groups,
		Sink:      sink,
		Workdir:   cmd.workdir,
	}

	if err := auditor.Run(ctx, folder); err != nil {
		return err
	}

	sink.Emit(audit.Finding{Severity: audit.Success, Message: "Complete!"})

	return nil
}

func (cmd *Check) validate() error {
	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cmd.reference) == "" && strings.TrimSpace(cmd.referenceURL) == "" {
		return fmt.Errorf("one of --reference or --reference-url is required")
	}

	if strings.TrimSpace(cmd.reference) != "" && strings.TrimSpace(cmd.referenceURL) != "" {
		return fmt.Errorf("--reference and --reference-url are mutually exclusive")
	}

	if strings.TrimSpace(cmd.referenceURL) != "" && strings.TrimSpace(cmd.referenceRange) == "" {
		return fmt.Errorf("--reference-range is required with --reference-url")
	}

	return nil
}

func (cmd *Check) authenticate(ctx context.Context) (*gdrive.Session, error) {
	secrets, err := config.Load(cmd.credentials)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", gdrive.ErrAuthentication, err)
	}

	return gdrive.Authenticate(ctx, gdrive.Credentials{
		ClientID:     secrets.Google.ClientID,
		ClientSecret: secrets.Google.ClientSecret,
		RefreshToken: secrets.Google.RefreshToken,
	})
}

func readCSV(file string) ([]reference.Row, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return reference.ReadCSV(f)
}

func readSheet(ctx context.Context, session *gdrive.Session, url, area string) ([]reference.Row, error) {
	spreadsheet, err := gdrive.ResolveSpreadsheetID(url)
	if err != nil {
		return nil, err
	}

	values, err := gdrive.GetValues(ctx, spreadsheet, area, option.WithTokenSource(session.TokenSource()))
	if err != nil {
		return nil, err
	}

	return reference.FromValues(values)
}
