package gdrive

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const FOLDER = "application/vnd.google-apps.folder"

// Item is a file or folder in Google Drive.
type Item struct {
	ID       string
	Name     string
	MimeType string
}

func (i Item) IsFolder() bool {
	return i.MimeType == FOLDER
}

// Drive is the subset of the Google Drive v3 API used to walk a folder and
// fetch workbooks.
type Drive struct {
	service *drive.Service
	log     *zap.Logger
}

func NewDrive(ctx context.Context, log *zap.Logger, options ...option.ClientOption) (*Drive, error) {
	service, err := drive.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Google Drive client (%w)", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Drive{
		service: service,
		log:     log,
	}, nil
}

// Folder fetches the metadata for a file or folder.
func (d *Drive) Folder(ctx context.Context, id string) (Item, error) {
	d.log.Debug("get metadata", zap.String("id", id))

	f, err := d.service.Files.Get(id).
		Fields("id, name, mimeType").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return Item{}, fmt.Errorf("unable to retrieve metadata for %v (%w)", id, err)
	}

	return Item{ID: f.Id, Name: f.Name, MimeType: f.MimeType}, nil
}

// List returns the non-trashed items directly inside a folder.
func (d *Drive) List(ctx context.Context, folder string) ([]Item, error) {
	items := []Item{}
	page := ""

	for {
		call := d.service.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed=false", folder)).
			Fields("nextPageToken, files(id, name, mimeType)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx)

		if page != "" {
			call.PageToken(page)
		}

		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list folder %v (%w)", folder, err)
		}

		for _, f := range list.Files {
			items = append(items, Item{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}

		if page = list.NextPageToken; page == "" {
			break
		}
	}

	d.log.Debug("list folder", zap.String("id", folder), zap.Int("items", len(items)))

	return items, nil
}

// Download stores the content of a file to a local path.
func (d *Drive) Download(ctx context.Context, id string, path string) error {
	d.log.Debug("download", zap.String("id", id), zap.String("file", path))

	response, err := d.service.Files.Get(id).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("unable to download %v (%w)", id, err)
	}

	defer response.Body.Close()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	if _, err := io.Copy(f, response.Body); err != nil {
		return fmt.Errorf("error downloading %v (%w)", id, err)
	}

	return f.Close()
}
