// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the frame format wrapped around an encoded
// document. Frames are self-describing: [Detect] recognises each
// format by its magic number, so the choice never needs to be stored
// alongside the data.
type Compression uint8

const (
	// CompressionNone leaves data unwrapped.
	CompressionNone Compression = iota

	// CompressionZstd wraps data in a zstd frame with a content
	// checksum. Best ratio for the repetitive key names of a
	// document with many specialisations.
	CompressionZstd

	// CompressionLZ4 wraps data in an LZ4 frame with a content
	// checksum. Faster to decode, for boot paths that read the
	// cache on every start.
	CompressionLZ4
)

// String returns the flag spelling of a compression format.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression format from its flag
// spelling. The empty string means none.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (expected none, zstd, or lz4)", name)
	}
}

// maxDecompressedSize bounds decompression of untrusted input. Bootspec
// documents are a few kilobytes even with many specialisations.
const maxDecompressedSize = 64 << 20

var (
	// zstdMagic starts every zstd frame (RFC 8878 §3.1.1).
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

	// lz4Magic starts every LZ4 frame.
	lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}
)

// zstdEncoder and zstdDecoder are reused across calls. Both are safe
// for concurrent use through EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderCRC(true),
	)
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecompressedSize))
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress wraps data in a single frame of the given format. For
// CompressionNone it returns data unchanged (no copy).
func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data))), nil
	case CompressionLZ4:
		return compressLZ4(data)
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

// Detect reports the frame format data starts with.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// IsCompressed reports whether data starts with a known frame header.
func IsCompressed(data []byte) bool {
	return Detect(data) != CompressionNone
}

// Decompress reverses [Compress] for whichever format [Detect] finds.
// Input without a frame header is returned unchanged, so callers can
// accept both forms.
func Decompress(data []byte) ([]byte, error) {
	switch Detect(data) {
	case CompressionZstd:
		decompressed, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return decompressed, nil
	case CompressionLZ4:
		return decompressLZ4(data)
	default:
		return data, nil
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if err := writer.Apply(lz4.ChecksumOption(true), lz4.CompressionLevelOption(lz4.Level9)); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buffer.Bytes(), nil
}

// lz4EndMark terminates the block sequence of every LZ4 frame.
var lz4EndMark = []byte{0x00, 0x00, 0x00, 0x00}

func decompressLZ4(data []byte) ([]byte, error) {
	valid, err := lz4.ValidFrameHeader(data)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: invalid frame header: %w", err)
	}
	if !valid {
		return nil, errors.New("lz4 decompress: invalid frame header")
	}

	reader := lz4.NewReader(bytes.NewReader(data))
	decompressed, err := io.ReadAll(io.LimitReader(reader, maxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if len(decompressed) > maxDecompressedSize {
		return nil, fmt.Errorf("lz4 decompress: output exceeds %d bytes", maxDecompressedSize)
	}
	// The reader treats a frame cut off before its first block as
	// empty. An empty frame still carries the end mark.
	if len(decompressed) == 0 && !bytes.Contains(data[len(lz4Magic):], lz4EndMark) {
		return nil, errors.New("lz4 decompress: truncated frame")
	}
	return decompressed, nil
}
