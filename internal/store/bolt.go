package store

import (
	"bytes"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketSlots = "slots" // key: slot name -> raw value

type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) a bbolt database at path. The file lock times
// out after one second so a second running instance fails fast.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketSlots))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Get(slot string) ([]byte, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}

	var out []byte

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketSlots)).Get([]byte(slot))
		if v == nil {
			return ErrSlotNotFound
		}

		// v is only valid for the life of the transaction
		out = bytes.Clone(v)

		return nil
	})

	return out, err
}

func (b *Bolt) Put(slot string, value []byte) error {
	if err := validSlot(slot); err != nil {
		return err
	}

	if value == nil {
		value = []byte{}
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSlots)).Put([]byte(slot), value)
	})
}

func (b *Bolt) Delete(slot string) error {
	if err := validSlot(slot); err != nil {
		return err
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSlots)).Delete([]byte(slot))
	})
}

func (b *Bolt) Slots() ([]string, error) {
	var out []string

	err := b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSlots)).ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})

	return out, err
}
