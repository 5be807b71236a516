package duck

import (
	"context"
	"database/sql"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "defile/entity"
)

// Duck keeps the photo records of a session in an in-memory duckdb.
// Nothing outlives Close.
type Duck struct {
	db     *sql.DB
	logger nt.Logger
	seq    int
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	// one connection so every statement sees the same memory db
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE photos (
			seq INTEGER PRIMARY KEY,
			page INTEGER NOT NULL,
			id VARCHAR,
			author VARCHAR,
			width INTEGER,
			height INTEGER,
			url VARCHAR,
			download_url VARCHAR NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		err = errors.Wrapf(err, "failed to create table")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
	}
	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Record a page of photos
func (dk *Duck) Record(ctx context.Context, page int, photos []nt.Photo) (err error) {

	tx, err := dk.db.BeginTx(ctx, nil)
	if err != nil {
		err = errors.Wrapf(err, "failed to begin")
		return
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO photos (seq, page, id, author, width, height, url, download_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to prepare insert")
		return
	}
	defer stmt.Close()

	seq := dk.seq
	for _, photo := range photos {
		seq++
		_, err = stmt.ExecContext(ctx, seq, page,
			photo.Id, photo.Author, photo.Width, photo.Height, photo.Url, photo.DownloadUrl)
		if err != nil {
			err = errors.Wrapf(err, "failed to insert photo %s", photo.Id)
			return
		}
	}

	err = tx.Commit()
	if err != nil {
		err = errors.Wrapf(err, "failed to commit")
		return
	}

	dk.seq = seq
	dk.logger.Info(ctx, "recorded photos", "page", page, "count", len(photos))
	return
}

// Count returns the number of photos recorded
func (dk *Duck) Count() (count int, err error) {

	err = dk.db.QueryRow("SELECT COUNT(*) FROM photos").Scan(&count)
	err = errors.Wrapf(err, "failed to count photos")
	return
}

// GetPhoto returns the record for a download locator
func (dk *Duck) GetPhoto(ref string) (data map[string]any, err error) {

	rows, err := dk.db.Query(`
		SELECT id, author, width, height, url, download_url, page
		FROM photos
		WHERE download_url = ?
		ORDER BY seq
		LIMIT 1
	`, ref)
	if err != nil {
		err = errors.Wrapf(err, "failed to query photo")
		return
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		err = errors.Wrapf(err, "failed to get cols from query rows")
		return
	}

	if !rows.Next() {
		err = rows.Err()
		if err == nil {
			err = errors.Errorf("no photo for %s", ref)
		}
		return
	}

	vals, err := scanRow(rows, len(cols))
	if err != nil {
		err = errors.Wrapf(err, "failed to scan row")
		return
	}

	data = make(map[string]any, len(cols))
	for i, col := range cols {
		data[col] = vals[i]
	}
	return
}

// unexported

func scanRow(rows *sql.Rows, columnCount int) ([]any, error) {
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}
