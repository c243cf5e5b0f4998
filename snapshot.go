package recgo

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/recgo/codec"
	"github.com/hupe1980/recgo/record"
)

// CompressionType selects the compression applied to a snapshot payload.
type CompressionType uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone CompressionType = 0
	// CompressionZSTD compresses the payload with zstd (better ratio).
	CompressionZSTD CompressionType = 1
	// CompressionLZ4 compresses the payload with the LZ4 frame format (faster).
	CompressionLZ4 CompressionType = 2
)

var snapshotMagic = [4]byte{'R', 'S', 'N', 'P'}

const snapshotVersion uint8 = 1

// SnapshotOptions configures SaveSnapshot.
type SnapshotOptions struct {
	// Compression applied to the encoded payload. Defaults to CompressionNone.
	Compression CompressionType

	// Codec used to encode the payload. Defaults to the store's codec. The
	// codec name is recorded in the header, so a snapshot can be restored by
	// a store configured with a different codec.
	Codec codec.Codec
}

// snapshotState is the wire payload: every collection's records, keyed by
// collection name. Records round-trip through their natural JSON encoding.
type snapshotState struct {
	Collections map[string][]record.Record `json:"collections"`
}

// SaveSnapshot writes the full contents of the store to w.
//
// Layout: 4-byte magic, version byte, compression byte, length-prefixed
// codec name, then the (optionally compressed) encoded payload.
func (s *Store) SaveSnapshot(w io.Writer, optFns ...func(o *SnapshotOptions)) error {
	opts := SnapshotOptions{
		Compression: CompressionNone,
		Codec:       s.codec,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	err := s.saveSnapshot(w, opts)
	s.logger.LogSnapshot("save", len(s.collections), err)
	return err
}

func (s *Store) saveSnapshot(w io.Writer, opts SnapshotOptions) error {
	state := snapshotState{
		Collections: make(map[string][]record.Record, len(s.collections)),
	}
	for name, c := range s.collections {
		state.Collections[name] = c.All()
	}

	payload, err := opts.Codec.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := writeSnapshotHeader(w, opts.Compression, opts.Codec.Name()); err != nil {
		return err
	}

	switch opts.Compression {
	case CompressionNone:
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("write snapshot payload: %w", err)
		}
		return nil
	case CompressionZSTD:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("create zstd writer: %w", err)
		}
		if _, err := zw.Write(payload); err != nil {
			zw.Close()
			return fmt.Errorf("write snapshot payload: %w", err)
		}
		return zw.Close()
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		if _, err := lw.Write(payload); err != nil {
			lw.Close()
			return fmt.Errorf("write snapshot payload: %w", err)
		}
		return lw.Close()
	default:
		return fmt.Errorf("%w: unknown compression type %d", ErrInvalidSnapshot, opts.Compression)
	}
}

// RestoreSnapshot replaces the store's collection contents with a snapshot
// previously written by SaveSnapshot. Collections named in the snapshot are
// created if missing and truncated before loading; collections absent from
// the snapshot are left untouched. Factory bindings are not involved:
// snapshot records are restored verbatim.
func (s *Store) RestoreSnapshot(r io.Reader) error {
	state, err := readSnapshot(r)
	if err != nil {
		s.logger.LogSnapshot("restore", 0, err)
		return err
	}

	err = s.restoreState(state)
	s.logger.LogSnapshot("restore", len(state.Collections), err)
	return err
}

func (s *Store) restoreState(state snapshotState) error {
	for name, records := range state.Collections {
		if c, ok := s.collections[name]; ok {
			c.Clear()
		} else if err := s.AddCollection(name); err != nil {
			return err
		}

		if err := s.collections[name].InsertAll(records); err != nil {
			return fmt.Errorf("restore collection %q: %w", name, err)
		}
	}
	return nil
}

func writeSnapshotHeader(w io.Writer, compression CompressionType, codecName string) error {
	if len(codecName) > 255 {
		return fmt.Errorf("%w: codec name too long", ErrInvalidSnapshot)
	}

	header := make([]byte, 0, 7+len(codecName))
	header = append(header, snapshotMagic[:]...)
	header = append(header, snapshotVersion, byte(compression), byte(len(codecName)))
	header = append(header, codecName...)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	return nil
}

func readSnapshot(r io.Reader) (snapshotState, error) {
	var state snapshotState

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return state, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if magic != snapshotMagic {
		return state, fmt.Errorf("%w: bad magic %q", ErrInvalidSnapshot, magic[:])
	}

	var fixed [3]byte // version, compression, codec name length
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return state, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	if fixed[0] != snapshotVersion {
		return state, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, fixed[0])
	}

	nameBuf := make([]byte, fixed[2])
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return state, fmt.Errorf("%w: truncated codec name", ErrInvalidSnapshot)
	}

	c, ok := codec.ByName(string(nameBuf))
	if !ok {
		return state, fmt.Errorf("%w: unknown codec %q", ErrInvalidSnapshot, nameBuf)
	}

	var (
		payload []byte
		err     error
	)
	switch CompressionType(fixed[1]) {
	case CompressionNone:
		payload, err = io.ReadAll(r)
	case CompressionZSTD:
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(r)
		if err == nil {
			payload, err = io.ReadAll(zr.IOReadCloser())
			zr.Close()
		}
	case CompressionLZ4:
		payload, err = io.ReadAll(lz4.NewReader(r))
	default:
		return state, fmt.Errorf("%w: unknown compression type %d", ErrInvalidSnapshot, fixed[1])
	}
	if err != nil {
		return state, fmt.Errorf("read snapshot payload: %w", err)
	}

	if err := c.Unmarshal(payload, &state); err != nil {
		return state, fmt.Errorf("%w: decode payload: %v", ErrInvalidSnapshot, err)
	}
	return state, nil
}
