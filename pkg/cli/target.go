package cli

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/files"
	"github.com/filetug/estorage/pkg/files/ftpfile"
	"github.com/filetug/estorage/pkg/files/httpfile"
	"github.com/filetug/estorage/pkg/files/osfile"
	"github.com/filetug/estorage/pkg/fsutils"
	"github.com/filetug/estorage/pkg/settings"
)

var filepathAbs = filepath.Abs

// openStore picks the store for target and returns the path inside it.
// Targets are local paths, or ftp://, http:// and https:// URLs.
func openStore(s settings.Settings, target string) (files.Store, string, error) {
	if !strings.Contains(target, "://") {
		return openLocal(target)
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, "", fmt.Errorf("invalid target %q: %w", target, err)
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	switch u.Scheme {
	case "file":
		return openLocal(u.Path)
	case "ftp":
		root := url.URL{Scheme: u.Scheme, Host: u.Host, User: u.User}
		store := ftpfile.NewStore(root,
			ftpfile.WithTimeout(s.FTP.Timeout),
			ftpfile.WithTLS(s.FTP.ExplicitTLS, s.FTP.ImplicitTLS),
		)
		return store, p, nil
	case "http", "https":
		root := url.URL{Scheme: u.Scheme, Host: u.Host, User: u.User}
		return httpfile.NewStore(root), p, nil
	default:
		return nil, "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func openLocal(target string) (files.Store, string, error) {
	if target == "" {
		target = "."
	}
	p, err := filepathAbs(fsutils.ExpandHome(target))
	if err != nil {
		return nil, "", fmt.Errorf("invalid path %q: %w", target, err)
	}
	root := filepath.VolumeName(p) + string(filepath.Separator)
	return osfile.NewStore(root), p, nil
}

func resolveItem(ctx context.Context, target string) (estorage.Item, error) {
	store, p, err := openStore(settingsFrom(ctx), target)
	if err != nil {
		return nil, err
	}
	return estorage.GetFromPath(ctx, store, p)
}

func resolveFile(ctx context.Context, target string) (*estorage.File, error) {
	store, p, err := openStore(settingsFrom(ctx), target)
	if err != nil {
		return nil, err
	}
	return estorage.GetFileFromPath(ctx, store, p)
}

func resolveFolder(ctx context.Context, target string) (*estorage.Folder, error) {
	store, p, err := openStore(settingsFrom(ctx), target)
	if err != nil {
		return nil, err
	}
	return estorage.GetFolderFromPath(ctx, store, p)
}
