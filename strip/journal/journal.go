// Package journal keeps a history of strip runs in a bolt database.
package journal

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/boltdb/bolt"
	"github.com/olekukonko/tablewriter"
)

const bucketName = "runs"

// keyLayout is fixed width so that bolt's byte ordering of keys is also
// chronological order.
const keyLayout = "2006-01-02T15:04:05.000000000Z"

// Run is the journal entry for one strip run.
type Run struct {
	Time      time.Time `json:"timestamp"`
	Root      string    `json:"root"`
	Suffix    string    `json:"suffix"`
	Encoding  string    `json:"encoding"`
	Files     int       `json:"files"`
	Changed   int       `json:"changed"`
	Failed    int       `json:"failed"`
	Dropped   int       `json:"dropped-lines"`
	Truncated int       `json:"truncated-lines"`
}

type Journal struct {
	filename string
}

func New(filename string) *Journal {
	return &Journal{filename: filename}
}

func (j *Journal) open(readOnly bool) (*bolt.DB, error) {
	return bolt.Open(j.filename, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: readOnly})
}

func (j *Journal) Record(run *Run) error {
	db, err := j.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		value, err := json.Marshal(run)
		if err != nil {
			return err
		}

		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}

		return b.Put([]byte(run.Time.UTC().Format(keyLayout)), value)
	})
}

// Runs returns every recorded run, oldest first. A journal that was never
// written to has no runs.
func (j *Journal) Runs() ([]*Run, error) {
	if _, err := os.Stat(j.filename); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	db, err := j.open(true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var runs []*Run
	if err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			r := &Run{}
			if err := json.Unmarshal(v, r); err != nil {
				return err
			}
			runs = append(runs, r)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return runs, nil
}

// WriteTable renders runs as a table.
func WriteTable(w io.Writer, runs []*Run) error {
	tw := tablewriter.NewWriter(w)
	tw.Header("time", "root", "suffix", "files", "changed", "failed", "dropped", "truncated")
	for _, r := range runs {
		if err := tw.Append([]string{
			r.Time.Local().Format(time.DateTime),
			r.Root,
			r.Suffix,
			strconv.Itoa(r.Files),
			strconv.Itoa(r.Changed),
			strconv.Itoa(r.Failed),
			strconv.Itoa(r.Dropped),
			strconv.Itoa(r.Truncated),
		}); err != nil {
			return err
		}
	}
	return tw.Render()
}
