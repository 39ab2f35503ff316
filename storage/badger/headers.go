package badger

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/vmihailenco/msgpack/v4"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/storage"
)

// codeHeader is the key prefix for header entries.
const codeHeader = 0x01

// Headers implements persistent header storage around a badger DB. Values are
// msgpack-encoded headers keyed by prefix, chain ID and hash.
type Headers struct {
	db *badger.DB
}

var _ storage.Headers = (*Headers)(nil)

func NewHeaders(db *badger.DB) *Headers {
	return &Headers{db: db}
}

func headerKey(chain braid.ChainID, hash braid.BlockHash) []byte {
	key := make([]byte, 1+4+braid.HashLen)
	key[0] = codeHeader
	binary.BigEndian.PutUint32(key[1:5], uint32(chain))
	copy(key[5:], hash[:])
	return key
}

func (h *Headers) ByHash(chain braid.ChainID, hash braid.BlockHash) (*braid.BlockHeader, error) {
	var header braid.BlockHeader
	err := h.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(headerKey(chain, hash))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("could not retrieve header: %w", err)
		}
		return item.Value(func(val []byte) error {
			err := msgpack.Unmarshal(val, &header)
			if err != nil {
				return fmt.Errorf("could not decode header: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (h *Headers) Store(header *braid.BlockHeader) error {
	val, err := msgpack.Marshal(header)
	if err != nil {
		return fmt.Errorf("could not encode header: %w", err)
	}
	key := headerKey(header.ChainID, header.Hash)
	err = h.db.Update(func(tx *badger.Txn) error {
		// storing the same header twice is a no-op
		_, err := tx.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not check key: %w", err)
		}
		err = tx.Set(key, val)
		if err != nil {
			return fmt.Errorf("could not store data: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not store header: %w", err)
	}
	return nil
}
