package rivulet

import (
	"encoding/binary"
	"encoding/json"
	"sync"

	bolt "go.etcd.io/bbolt"
)

// Journal is an append-only record/replay log backed by bbolt. Record
// persists a stream's emissions under a named log; Replay reads them
// back, in order, as a cold source
type Journal struct {
	db *bolt.DB
}

const journalFileMode = 0o600

// OpenJournal opens (or creates) the journal file at path
func OpenJournal(path string) (*Journal, error) {
	db, err := bolt.Open(path, journalFileMode, nil)
	if err != nil {
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close releases the underlying database
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record persists each source emission to the named log before
// forwarding it unchanged. A write failure surfaces as Error and cancels
// the upstream subscription, so timers and pumps behind the source are
// released; until then, upstream terminal signals pass through as usual
func Record[T any](src Observable[T], j *Journal, name string) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		var mu sync.Mutex
		failed := false
		var upstream Cancel

		c := src.Subscribe(Observer[T]{
			Next: func(v T) {
				mu.Lock()
				if failed {
					mu.Unlock()
					return
				}
				mu.Unlock()

				if err := j.append(name, v); err != nil {
					mu.Lock()
					failed = true
					c := upstream
					mu.Unlock()
					obs.Error(err)
					if c != nil {
						c()
					}
					return
				}
				obs.Next(v)
			},
			Error: func(err error) {
				mu.Lock()
				if failed {
					mu.Unlock()
					return
				}
				mu.Unlock()
				obs.Error(err)
			},
			Complete: func() {
				mu.Lock()
				if failed {
					mu.Unlock()
					return
				}
				mu.Unlock()
				obs.Complete()
			},
		})

		// a synchronous source can fail before Subscribe returns, in
		// which case the teardown was not yet in reach
		mu.Lock()
		upstream = c
		finished := failed
		mu.Unlock()
		if finished {
			c()
		}
		return c
	})
}

// Replay creates a cold Observable that emits every value recorded under
// the named log, in append order, then completes. An unknown name is an
// empty sequence. Each subscription reads the log afresh
func Replay[T any](j *Journal, name string) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		err := j.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(name))
			if b == nil {
				return nil
			}
			c := b.Cursor()
			for k, v := c.First(); k != nil; k, v = c.Next() {
				var out T
				if err := json.Unmarshal(v, &out); err != nil {
					return err
				}
				obs.Next(out)
			}
			return nil
		})
		if err != nil {
			obs.Error(err)
			return nil
		}
		obs.Complete()
		return nil
	})
}

func (j *Journal) append(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return j.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, data)
	})
}
