package httpfile

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/filetug/estorage/pkg/files"
)

type StoreOption func(*HttpStore)

func NewStore(root url.URL, o ...StoreOption) *HttpStore {
	store := &HttpStore{
		Root: root,
	}
	for _, opt := range o {
		opt(store)
	}
	return store
}

func WithHttpClient(client *http.Client) StoreOption {
	return func(store *HttpStore) {
		store.client = client
	}
}

var _ files.Store = (*HttpStore)(nil)

// HttpStore is a read-only store over plain HTTP index pages.
type HttpStore struct {
	Root   url.URL
	client *http.Client
}

var hrefRegexp = regexp.MustCompile(`<a href="([^"]+)">`)

func (h HttpStore) RootURL() url.URL {
	return h.Root
}

func (h HttpStore) RootTitle() string {
	root := h.Root
	root.User = nil
	return root.String()
}

func (h HttpStore) request(ctx context.Context, method, name string) (*http.Response, error) {
	u := h.Root
	u.Path = name

	client := h.client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusNotFound, http.StatusGone:
		_ = resp.Body.Close()
		return nil, &fs.PathError{Op: method, Path: name, Err: fs.ErrNotExist}
	case http.StatusUnauthorized, http.StatusForbidden:
		_ = resp.Body.Close()
		return nil, &fs.PathError{Op: method, Path: name, Err: fs.ErrPermission}
	default:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

func (h HttpStore) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}
	resp, err := h.request(ctx, http.MethodGet, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directory listing: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	matches := hrefRegexp.FindAllStringSubmatch(string(body), -1)

	var entries []os.DirEntry
	for _, match := range matches {
		href := match[1]
		if href == "../" || href == "/" || strings.Contains(href, "?") {
			continue
		}
		isDir := strings.HasSuffix(href, "/")
		entryName := strings.TrimSuffix(href, "/")
		if strings.Contains(entryName, "/") {
			continue
		}
		entries = append(entries, files.NewDirEntry(entryName, isDir))
	}
	return entries, nil
}

func (h HttpStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := h.request(ctx, http.MethodGet, name)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Attributes issues a HEAD request. HTTP only knows a modification time,
// which is reported for every timestamp.
func (h HttpStore) Attributes(ctx context.Context, name string) (files.AttributeData, error) {
	resp, err := h.request(ctx, http.MethodHead, name)
	if err != nil {
		return files.AttributeData{}, err
	}
	_ = resp.Body.Close()

	data := files.AttributeData{FileAttributes: files.AttrReadOnly}
	if strings.HasSuffix(name, "/") || isRedirectedToIndex(resp) {
		data.FileAttributes |= files.AttrDirectory
	} else if resp.ContentLength > 0 {
		data.SetSize(resp.ContentLength)
	}
	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := http.ParseTime(lastModified); err == nil {
			ft := files.NewFileTime(t.In(time.UTC))
			data.CreationTime, data.LastAccessTime, data.LastWriteTime = ft, ft, ft
		}
	}
	return data, nil
}

// isRedirectedToIndex reports a server redirecting "/dir" to "/dir/".
func isRedirectedToIndex(resp *http.Response) bool {
	return resp.Request != nil && resp.Request.URL != nil &&
		strings.HasSuffix(resp.Request.URL.Path, "/")
}

func (h HttpStore) CreateDir(ctx context.Context, path string) error {
	_, _ = ctx, path
	return files.ErrNotImplemented
}

func (h HttpStore) CreateFile(ctx context.Context, path string) error {
	_, _ = ctx, path
	return files.ErrNotImplemented
}

func (h HttpStore) Delete(ctx context.Context, path string) error {
	_, _ = ctx, path
	return files.ErrNotImplemented
}

func (h HttpStore) RemoveDir(ctx context.Context, path string) error {
	_, _ = ctx, path
	return files.ErrNotImplemented
}

func (h HttpStore) Move(ctx context.Context, from, to string) error {
	_, _, _ = ctx, from, to
	return files.ErrNotImplemented
}
