package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
)

// IPFSStore persists envelopes on the InterPlanetary File System. The
// returned references are IPFS CIDs, so anyone holding the CID can fetch and
// independently verify the envelope.
type IPFSStore struct {
	shell *shell.Shell
	host  string
	port  string
	log   *slog.Logger
}

// NewIPFSStore creates an envelope store connected to the IPFS API at the
// specified host and port.
func NewIPFSStore(host, port string, log *slog.Logger) *IPFSStore {
	return &IPFSStore{
		shell: shell.NewShell(fmt.Sprintf("%s:%s", host, port)),
		host:  host,
		port:  port,
		log:   log,
	}
}

// Put adds a serialized envelope to IPFS and returns its CID.
// Returns ErrBackendUnavailable if the IPFS node is not accessible.
func (s *IPFSStore) Put(ctx context.Context, data []byte) (string, error) {
	if !s.shell.IsUp() {
		s.log.Warn("IPFS node unavailable",
			slog.String("host", s.host),
			slog.String("port", s.port))
		return "", ErrBackendUnavailable
	}

	cid, err := s.shell.Add(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to add envelope to IPFS: %w", err)
	}

	s.log.Debug("Stored envelope in IPFS",
		slog.String("cid", cid),
		slog.Int("size", len(data)))

	return cid, nil
}

// Get retrieves a serialized envelope from IPFS by its CID.
// Returns ErrNotFound if the content doesn't exist or ErrBackendUnavailable
// if the IPFS node is not accessible.
func (s *IPFSStore) Get(ctx context.Context, ref string) ([]byte, error) {
	start := time.Now()

	if !s.shell.IsUp() {
		s.log.Warn("IPFS node unavailable",
			slog.String("host", s.host),
			slog.String("port", s.port))
		return nil, ErrBackendUnavailable
	}

	reader, err := s.shell.Cat("/ipfs/" + ref)
	if err != nil {
		if strings.Contains(err.Error(), "no link named") || strings.Contains(err.Error(), "not found") {
			s.log.Debug("Envelope not found in IPFS",
				slog.String("cid", ref),
				slog.Duration("duration", time.Since(start)))
			return nil, ErrNotFound
		}

		s.log.Error("Failed to fetch envelope from IPFS",
			slog.String("cid", ref),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to fetch envelope from IPFS: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read envelope from IPFS: %w", err)
	}

	s.log.Debug("Fetched envelope from IPFS",
		slog.String("cid", ref),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Available checks if the IPFS node is accessible.
func (s *IPFSStore) Available(ctx context.Context) bool {
	return s.shell.IsUp()
}

// Name returns a unique identifier for this storage backend.
func (s *IPFSStore) Name() string {
	return fmt.Sprintf("ipfs-%s-%s", s.host, s.port)
}
