package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"visastay/internal/app"
	"visastay/internal/config"
	"visastay/internal/flightlog"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Scheme prefixes a remote flight log location: ssh://user@host[:port]:path
const Scheme = "ssh://"

var ErrFlightLogTooLarge = errors.New("remote flight log exceeds size limit")

// Location is a parsed remote flight log address
type Location struct {
	User string
	Host string
	Port string
	Path string
}

// Addr returns host:port for dialing
func (l Location) Addr() string {
	return net.JoinHostPort(l.Host, l.Port)
}

// SSHFetcher reads a flight log CSV from a remote host over SSH
type SSHFetcher struct {
	keyPath        string
	knownHostsPath string
	location       string
	limits         config.SourceConfig
	client         *ssh.Client
	connected      bool
}

// NewSSHFetcher creates a fetcher for a location in user@host[:port]:path
// form, with or without the ssh:// prefix
func NewSSHFetcher(location, keyPath, knownHostsPath string, limits config.SourceConfig) *SSHFetcher {
	return &SSHFetcher{
		keyPath:        keyPath,
		knownHostsPath: knownHostsPath,
		location:       strings.TrimPrefix(location, Scheme),
		limits:         limits,
	}
}

// ParseLocation parses a location in format: user@host:path or
// user@host:port:path. A numeric segment followed by another colon is a port;
// the port defaults to 22.
func ParseLocation(location string) (Location, error) {
	location = strings.TrimPrefix(location, Scheme)
	if location == "" {
		return Location{}, fmt.Errorf("ssh location is empty")
	}

	user, hostPath, ok := strings.Cut(location, "@")
	if !ok || user == "" {
		return Location{}, fmt.Errorf("invalid ssh location %q: expected user@host[:port]:path", location)
	}

	host, remotePath, ok := strings.Cut(hostPath, ":")
	if !ok || host == "" {
		return Location{}, fmt.Errorf("invalid ssh location %q: expected user@host[:port]:path", location)
	}

	port := config.SSHPort
	if maybePort, rest, ok := strings.Cut(remotePath, ":"); ok && isPort(maybePort) {
		port = maybePort
		remotePath = rest
	}
	if remotePath == "" {
		return Location{}, fmt.Errorf("invalid ssh location %q: missing remote path", location)
	}

	return Location{User: user, Host: host, Port: port, Path: remotePath}, nil
}

func isPort(s string) bool {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0 && n <= 65535
}

func (f *SSHFetcher) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if f.knownHostsPath == "" {
		log.Warn().Msg("SSH_KNOWN_HOSTS not set, remote host key will not be verified")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	return knownhosts.New(f.knownHostsPath)
}

// Connect establishes the SSH connection
func (f *SSHFetcher) Connect(ctx context.Context) error {
	if f.connected {
		return nil
	}

	loc, err := ParseLocation(f.location)
	if err != nil {
		return err
	}

	keyData, err := os.ReadFile(f.keyPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file %s: %w", f.keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	hostKeyCallback, err := f.hostKeyCallback()
	if err != nil {
		return fmt.Errorf("failed to load known hosts %s: %w", f.knownHostsPath, err)
	}

	clientConfig := &ssh.ClientConfig{
		User:            loc.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         config.SSHDialTimeout,
	}

	dialer := net.Dialer{Timeout: config.SSHDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", loc.Addr())
	if err != nil {
		return fmt.Errorf("failed to connect to SSH server %s: %w", loc.Addr(), err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, loc.Addr(), clientConfig)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SSH handshake with %s failed: %w", loc.Addr(), err)
	}

	f.client = ssh.NewClient(sshConn, chans, reqs)
	f.connected = true
	log.Debug().
		Str("host", loc.Host).
		Str("port", loc.Port).
		Str("user", loc.User).
		Msg("Connected to SSH server")

	return nil
}

// Disconnect closes the SSH connection
func (f *SSHFetcher) Disconnect() error {
	if f.client != nil {
		err := f.client.Close()
		f.connected = false
		f.client = nil
		return err
	}
	return nil
}

// Fetch returns the raw contents of the remote flight log. Files larger than
// the configured MaxBytes fail with ErrFlightLogTooLarge; MaxBytes <= 0 means
// no limit.
func (f *SSHFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if !f.connected {
		if err := f.Connect(ctx); err != nil {
			return nil, err
		}
	}

	loc, err := ParseLocation(f.location)
	if err != nil {
		return nil, err
	}

	session, err := f.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	stdout, err := session.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	session.Stderr = &stderr

	if err := session.Start("cat " + shellQuote(loc.Path)); err != nil {
		return nil, fmt.Errorf("failed to start remote read: %w", err)
	}

	type result struct {
		data []byte
		err  error
	}
	limit := f.limits.MaxBytes
	done := make(chan result, 1)
	go func() {
		reader := io.Reader(stdout)
		if limit > 0 {
			reader = io.LimitReader(stdout, limit+1)
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			done <- result{err: err}
			return
		}
		// the remote side is still writing; the deferred Close ends it
		if limit > 0 && int64(len(data)) > limit {
			done <- result{err: fmt.Errorf("%w: %s is larger than %d bytes", ErrFlightLogTooLarge, loc.Path, limit)}
			return
		}
		done <- result{data: data, err: session.Wait()}
	}()

	select {
	case <-ctx.Done():
		session.Close()
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, ErrFlightLogTooLarge) {
				return nil, res.err
			}
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("remote read of %s failed: %w: %s", loc.Path, res.err, msg)
			}
			return nil, fmt.Errorf("remote read of %s failed: %w", loc.Path, res.err)
		}

		log.Debug().
			Str("remote_path", loc.Path).
			Int("size", len(res.data)).
			Msg("Fetched flight log via SSH")

		return res.data, nil
	}
}

// LoadLegs fetches the remote CSV and parses it into flight legs
func (f *SSHFetcher) LoadLegs(ctx context.Context) ([]app.FlightLeg, error) {
	if f.limits.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.limits.Timeout)
		defer cancel()
	}
	defer f.Disconnect()

	data, err := f.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", flightlog.ErrSourceUnavailable, err)
	}

	return flightlog.ParseCSV(bytes.NewReader(data))
}

// shellQuote wraps s in single quotes for a POSIX shell
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
