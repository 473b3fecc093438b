package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTPStorage stores files on a remote host below dir. The connection is
// opened lazily and reused until an operation fails.
type SFTPStorage struct {
	addr       string
	username   string
	privateKey []byte
	dir        string

	mu     sync.Mutex
	conn   *ssh.Client
	client *sftp.Client
}

func NewSFTPStorage(addr, username string, privateKey []byte, dir string) *SFTPStorage {
	return &SFTPStorage{
		addr:       addr,
		username:   username,
		privateKey: privateKey,
		dir:        dir,
	}
}

func NewSFTPStorageFromKeyFile(addr, username, keyPath, dir string) (*SFTPStorage, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("err reading sftp private key: %w", err)
	}
	return NewSFTPStorage(addr, username, key, dir), nil
}

func (ss *SFTPStorage) Close() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.closeLocked()
}

func (ss *SFTPStorage) closeLocked() error {
	var err error
	if ss.client != nil {
		err = ss.client.Close()
		ss.client = nil
	}
	if ss.conn != nil {
		if cerr := ss.conn.Close(); err == nil {
			err = cerr
		}
		ss.conn = nil
	}
	return err
}

func (ss *SFTPStorage) connect() (*sftp.Client, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.client != nil {
		return ss.client, nil
	}

	signer, err := ssh.ParsePrivateKey(ss.privateKey)
	if err != nil {
		return nil, err
	}
	config := &ssh.ClientConfig{
		User:            ss.username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}
	conn, err := ssh.Dial("tcp", ss.addr, config)
	if err != nil {
		return nil, err
	}
	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	ss.conn = conn
	ss.client = client
	return client, nil
}

// reset drops the cached connection so the next call dials again.
func (ss *SFTPStorage) reset() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.closeLocked()
}

func (ss *SFTPStorage) Save(
	ctx context.Context,
	folder, originalName string,
	r io.Reader,
) (string, error) {
	name, err := NewFileName(folder, originalName)
	if err != nil {
		return "", err
	}
	client, err := ss.connect()
	if err != nil {
		return "", err
	}

	remotePath := path.Join(ss.dir, name)
	if err := client.MkdirAll(path.Dir(remotePath)); err != nil {
		ss.reset()
		return "", err
	}
	f, err := client.OpenFile(remotePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	if err != nil {
		ss.reset()
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		client.Remove(remotePath)
		return "", err
	}
	if err := f.Close(); err != nil {
		client.Remove(remotePath)
		return "", err
	}
	return name, nil
}

func (ss *SFTPStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	client, err := ss.connect()
	if err != nil {
		return nil, err
	}
	f, err := client.Open(path.Join(ss.dir, name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (ss *SFTPStorage) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return ErrInvalidName
	}
	client, err := ss.connect()
	if err != nil {
		return err
	}
	return client.Remove(path.Join(ss.dir, name))
}
