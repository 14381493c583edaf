package minter

import (
	"encoding/binary"
	"fmt"

	"github.com/ugorji/go/codec"
)

// Key-space prefixes for durable state records. Single-record keys are one
// byte; the per-address mint counts live under their own prefix so Purge can
// sweep them with one prefix scan.
var (
	keyConfig            = []byte{0x01}
	keyStatus            = []byte{0x02}
	keyTotalMintCount    = []byte{0x03}
	keyTokenIndex        = []byte{0x04}
	keyCollectionAddress = []byte{0x05}
	keyReplyToken        = []byte{0x06}
	keyContractVersion   = []byte{0x07}
	keyMinterAddrsPrefix = []byte{0x10}
)

func minterAddrKey(addr string) []byte {
	key := make([]byte, 0, len(keyMinterAddrsPrefix)+len(addr))
	key = append(key, keyMinterAddrsPrefix...)
	return append(key, addr...)
}

var cborHandle codec.CborHandle

func marshalRecord(v any) ([]byte, error) {
	var data []byte
	if err := codec.NewEncoderBytes(&data, &cborHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode state record: %w", err)
	}
	return data, nil
}

func unmarshalRecord(data []byte, v any) error {
	if err := codec.NewDecoderBytes(data, &cborHandle).Decode(v); err != nil {
		return fmt.Errorf("failed to decode state record: %w", err)
	}
	return nil
}

// versionRecord is the cw2-style contract identity written at instantiation
// and checked by Migrate.
type versionRecord struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func loadConfig(view StateView) (*Config, error) {
	data, err := view.Get(keyConfig)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotInstantiated
	}
	var cfg Config
	if err := unmarshalRecord(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func saveConfig(view StateView, cfg *Config) error {
	data, err := marshalRecord(cfg)
	if err != nil {
		return err
	}
	return view.Set(keyConfig, data)
}

func loadStatus(view StateView) (*Status, error) {
	data, err := view.Get(keyStatus)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotInstantiated
	}
	var status Status
	if err := unmarshalRecord(data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func saveStatus(view StateView, status *Status) error {
	data, err := marshalRecord(status)
	if err != nil {
		return err
	}
	return view.Set(keyStatus, data)
}

func loadCounter(view StateView, key []byte) (uint64, error) {
	data, err := view.Get(key)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("malformed counter record under key %x", key)
	}
	return binary.BigEndian.Uint64(data), nil
}

func saveCounter(view StateView, key []byte, value uint64) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, value)
	return view.Set(key, data)
}

func loadTotalMintCount(view StateView) (uint64, error) {
	return loadCounter(view, keyTotalMintCount)
}

func bumpTotalMintCount(view StateView) error {
	count, err := loadTotalMintCount(view)
	if err != nil {
		return err
	}
	return saveCounter(view, keyTotalMintCount, count+1)
}

// nextTokenIndex advances the identifier allocator and returns the freshly
// allocated id. The first id handed out is 1. The caller's state table makes
// the read-modify-write atomic with the rest of the request, so a failed
// request never consumes an id.
func nextTokenIndex(view StateView) (uint64, error) {
	current, err := loadCounter(view, keyTokenIndex)
	if err != nil {
		return 0, err
	}
	next := current + 1
	if err := saveCounter(view, keyTokenIndex, next); err != nil {
		return 0, err
	}
	return next, nil
}

func loadCollectionAddress(view StateView) (string, error) {
	data, err := view.Get(keyCollectionAddress)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func saveCollectionAddress(view StateView, addr string) error {
	return view.Set(keyCollectionAddress, []byte(addr))
}

func loadReplyToken(view StateView) (string, error) {
	data, err := view.Get(keyReplyToken)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func saveReplyToken(view StateView, token string) error {
	return view.Set(keyReplyToken, []byte(token))
}

func loadMintCount(view StateView, addr string) (uint32, error) {
	data, err := view.Get(minterAddrKey(addr))
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	if len(data) != 4 {
		return 0, fmt.Errorf("malformed mint count record for %s", addr)
	}
	return binary.BigEndian.Uint32(data), nil
}

func saveMintCount(view StateView, addr string, count uint32) error {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, count)
	return view.Set(minterAddrKey(addr), data)
}

// purgeMintCounts deletes every per-address entry.
func purgeMintCounts(view StateView) error {
	var keys [][]byte
	err := view.IteratePrefix(keyMinterAddrsPrefix, func(key, _ []byte) bool {
		owned := make([]byte, len(key))
		copy(owned, key)
		keys = append(keys, owned)
		return true
	})
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := view.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func loadVersion(view StateView) (*versionRecord, error) {
	data, err := view.Get(keyContractVersion)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotInstantiated
	}
	var rec versionRecord
	if err := unmarshalRecord(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func saveVersion(view StateView, rec *versionRecord) error {
	data, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	return view.Set(keyContractVersion, data)
}
