package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/servo2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	// holds one nested bucket per servo id
	BucketSequenceRuns = "sequenceRuns"

	// fixed width, unlike time.RFC3339Nano, so keys sort chronologically
	keyTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// SequenceRun is the record of one completed diagnostic sequence.
type SequenceRun struct {
	ServoId    string        `json:"servoId"`
	Sequence   string        `json:"sequence"`
	Start      time.Time     `json:"start"`
	Duration   time.Duration `json:"duration"`
	Commands   int           `json:"commands"`
	FinalAngle int           `json:"finalAngle"`
}

type Persistence interface {
	Init() error

	SaveSequenceRun(run SequenceRun) (err error)
	LoadSequenceRuns(servoId string) ([]SequenceRun, error)
	DeleteSequenceRuns(servoId string) (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func runKey(run SequenceRun) []byte {
	return []byte(run.Start.UTC().Format(keyTimeLayout))
}

// SaveSequenceRun saves the given run record to persistence
func (p persistence) SaveSequenceRun(run SequenceRun) (err error) {
	if len(run.ServoId) == 0 {
		return errors.New("sequence run without servo id")
	}

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists([]byte(BucketSequenceRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		b, err := root.CreateBucketIfNotExists([]byte(run.ServoId))
		if err != nil {
			return fmt.Errorf("create bucket for servo %s: %s", run.ServoId, err)
		}
		return b.Put(runKey(run), data)
	})
}

// servoBucket returns the run bucket of the given servo, nil if there is none yet
func servoBucket(tx *bolt.Tx, servoId string) *bolt.Bucket {
	root := tx.Bucket([]byte(BucketSequenceRuns))
	if root == nil {
		return nil
	}
	return root.Bucket([]byte(servoId))
}

// LoadSequenceRuns loads all run records of the given servo, oldest first
func (p persistence) LoadSequenceRuns(servoId string) ([]SequenceRun, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var runs []SequenceRun
	err = db.Update(func(tx *bolt.Tx) error {
		b := servoBucket(tx, servoId)
		if b == nil {
			return os.ErrNotExist
		}

		var corrupt [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var run SequenceRun
			if err := json.Unmarshal(v, &run); err != nil {
				ui.Warning("Unable to unmarshal saved sequence run %s/%s: %v", servoId, k, err)
				corrupt = append(corrupt, append([]byte{}, k...))
				return nil
			}
			runs = append(runs, run)
			return nil
		})
		if err != nil {
			return err
		}

		// if we cannot read the saved data, delete it
		for _, k := range corrupt {
			if err := b.Delete(k); err != nil {
				ui.Error("Unable to delete corrupt data key %s/%s: %v", servoId, k, err)
			}
		}

		if len(runs) == 0 {
			return os.ErrNotExist
		}
		return nil
	})

	return runs, err
}

// DeleteSequenceRuns removes all run records of the given servo
func (p persistence) DeleteSequenceRuns(servoId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		if servoBucket(tx, servoId) == nil {
			// no runs recorded yet
			return nil
		}
		return tx.Bucket([]byte(BucketSequenceRuns)).DeleteBucket([]byte(servoId))
	})
}
