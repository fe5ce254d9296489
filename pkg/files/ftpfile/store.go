package ftpfile

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/filetug/estorage/pkg/files"
	"github.com/jlaffaye/ftp"
)

const schema = "ftp"

const defaultTimeout = 5 * time.Second

// conn is the subset of *ftp.ServerConn the store uses.
type conn interface {
	Login(user, password string) error
	List(path string) ([]*ftp.Entry, error)
	GetEntry(path string) (*ftp.Entry, error)
	Retr(path string) (io.ReadCloser, error)
	Stor(path string, r io.Reader) error
	Delete(path string) error
	RemoveDir(path string) error
	MakeDir(path string) error
	Rename(from, to string) error
	Quit() error
}

type serverConn struct {
	*ftp.ServerConn
}

func (c serverConn) Retr(path string) (io.ReadCloser, error) {
	r, err := c.ServerConn.Retr(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

var ftpDial = func(addr string, options ...ftp.DialOption) (conn, error) {
	c, err := ftp.Dial(addr, options...)
	if err != nil {
		return nil, err
	}
	return serverConn{ServerConn: c}, nil
}

var _ files.Store = (*Store)(nil)

type StoreOption func(*Store)

type Store struct {
	host     string
	path     string
	user     string
	password string
	explicit bool
	implicit bool
	timeout  time.Duration
}

func WithTLS(explicit, implicit bool) StoreOption {
	return func(s *Store) {
		s.explicit = explicit
		s.implicit = implicit
	}
}

func WithTimeout(timeout time.Duration) StoreOption {
	return func(s *Store) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// NewStore creates a store for root, which carries host, optional
// credentials and the root path.
func NewStore(root url.URL, o ...StoreOption) *Store {
	s := &Store{
		host:    root.Host,
		path:    root.Path,
		timeout: defaultTimeout,
	}
	if root.User != nil {
		s.user = root.User.Username()
		s.password, _ = root.User.Password()
	}
	for _, opt := range o {
		opt(s)
	}
	return s
}

func (s *Store) RootURL() url.URL {
	return url.URL{
		Scheme: schema,
		Host:   s.host,
		Path:   s.path,
	}
}

func (s *Store) RootTitle() string {
	return schema + "://" + s.host
}

func (s *Store) connect(ctx context.Context) (conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	host, port, err := net.SplitHostPort(s.host)
	if err != nil {
		host = s.host
		port = "21"
	}
	addr := net.JoinHostPort(host, port)
	options := []ftp.DialOption{
		ftp.DialWithTimeout(s.timeout),
		ftp.DialWithContext(ctx),
	}
	if s.implicit {
		options = append(options, ftp.DialWithTLS(&tls.Config{ServerName: host, InsecureSkipVerify: true}))
	}
	if s.explicit {
		options = append(options, ftp.DialWithExplicitTLS(&tls.Config{ServerName: host, InsecureSkipVerify: true}))
	}

	c, err := ftpDial(addr, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ftp server: %w", err)
	}
	if s.user != "" {
		if err = c.Login(s.user, s.password); err != nil {
			_ = c.Quit()
			return nil, fmt.Errorf("failed to login to ftp server: %w", err)
		}
	}
	return c, nil
}

// do runs f on a fresh connection and quits afterwards.
func (s *Store) do(ctx context.Context, f func(c conn) error) error {
	c, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Quit()
	}()
	return f(c)
}

func (s *Store) ReadDir(ctx context.Context, name string) (result []os.DirEntry, err error) {
	err = s.do(ctx, func(c conn) error {
		entries, err := c.List(name)
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		result = make([]os.DirEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.Name == "." || entry.Name == ".." {
				continue
			}
			result = append(result, files.NewDirEntryFromAttributes(entry.Name, entryAttributes(entry)))
		}
		return nil
	})
	return
}

func (s *Store) CreateDir(ctx context.Context, path string) error {
	return s.do(ctx, func(c conn) error {
		return c.MakeDir(path)
	})
}

func (s *Store) CreateFile(ctx context.Context, path string) error {
	return s.do(ctx, func(c conn) error {
		return c.Stor(path, bytes.NewReader(nil))
	})
}

func (s *Store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	c, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	r, err := c.Retr(path)
	if err != nil {
		_ = c.Quit()
		return nil, fmt.Errorf("failed to retrieve %s: %w", path, err)
	}
	return &retrReader{ReadCloser: r, conn: c}, nil
}

// retrReader keeps the control connection alive until the transfer is closed.
type retrReader struct {
	io.ReadCloser
	conn conn
}

func (r *retrReader) Close() error {
	err := r.ReadCloser.Close()
	if quitErr := r.conn.Quit(); err == nil {
		err = quitErr
	}
	return err
}

func (s *Store) Delete(ctx context.Context, path string) error {
	return s.do(ctx, func(c conn) error {
		return c.Delete(path)
	})
}

func (s *Store) RemoveDir(ctx context.Context, path string) error {
	return s.do(ctx, func(c conn) error {
		return c.RemoveDir(path)
	})
}

func (s *Store) Move(ctx context.Context, from, to string) error {
	return s.do(ctx, func(c conn) error {
		if _, err := lookupEntry(c, to); err == nil {
			return &os.LinkError{Op: "move", Old: from, New: to, Err: fs.ErrExist}
		}
		return c.Rename(from, to)
	})
}

func (s *Store) Attributes(ctx context.Context, p string) (data files.AttributeData, err error) {
	err = s.do(ctx, func(c conn) error {
		entry, err := lookupEntry(c, p)
		if err != nil {
			return err
		}
		data = entryAttributes(entry)
		return nil
	})
	return
}

// lookupEntry asks for MLST first and falls back to listing the parent
// for servers that do not implement it.
func lookupEntry(c conn, p string) (*ftp.Entry, error) {
	if entry, err := c.GetEntry(p); err == nil {
		return entry, nil
	}
	trimmed := strings.TrimSuffix(p, "/")
	if trimmed == "" {
		return &ftp.Entry{Name: "/", Type: ftp.EntryTypeFolder}, nil
	}
	entries, err := c.List(path.Dir(trimmed))
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: err}
	}
	name := path.Base(trimmed)
	for _, entry := range entries {
		if entry.Name == name {
			return entry, nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// entryAttributes maps an FTP entry. FTP reports a single timestamp, so it
// stands in for creation and access time too.
func entryAttributes(entry *ftp.Entry) files.AttributeData {
	t := files.NewFileTime(entry.Time)
	data := files.AttributeData{
		FileAttributes: files.AttrNormal,
		CreationTime:   t,
		LastAccessTime: t,
		LastWriteTime:  t,
	}
	switch entry.Type {
	case ftp.EntryTypeFolder:
		data.FileAttributes = files.AttrDirectory
	case ftp.EntryTypeLink:
		data.FileAttributes = files.AttrReparsePoint
	default:
		data.SetSize(int64(entry.Size))
	}
	if strings.HasPrefix(entry.Name, ".") && entry.Name != "." && entry.Name != ".." {
		data.FileAttributes |= files.AttrHidden
	}
	return data
}
