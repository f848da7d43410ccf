package util
import (
	"database/sql"
	"encoding/json"
	"net/url"
	"time"

	"github.com/google/uuid"
	_ "github.com/xeodou/go-sqlcipher"

	"github.com/neema-sll/Steganography-Tool/cryptography"
)

/*
 * audit database for embed/extract operations. sqlcipher keeps the
 * whole history encrypted at rest, since the history itself reveals
 * which files carry hidden data.
 */
type DB struct {
	db		*sql.DB
	rowsLimit	uint
}

// one row of the operations table
type OperationRecord struct {
	ID		int64
	Timestamp	time.Time
	Type		string	// "embed" or "extract"
	InputFile	string
	OutputFile	string
	DataSize	int64
	EncryptionUsed	bool
	Success		bool
	ErrorMessage	string
	Metadata	map[string]string
}

type DBStats struct {
	TotalOperations	int64
	Embeds		int64
	Extracts	int64
	Failures	int64
	TotalBytes	int64
}

func ConnectDB( filename, password string, rowsLimit uint ) (*DB, error) {
	dbFilename := "file:" + url.QueryEscape( filename )
	dbFilename += "?_journal_mode=WAL&_key=" + url.QueryEscape( password )

	db, err := sql.Open( "sqlite3", dbFilename )
	if err != nil {
		return nil, err
	}
	final := &DB{ db, rowsLimit }
	// rotate the history once it outgrows the limit
	rows, err := final.Count()
	if err == nil && uint(rows) > rowsLimit {
		final.Close()
		ShredFile( filename )
		return ConnectDB( filename, password, rowsLimit )
	} // else the database did not exist before
	return final, nil
}

func (db *DB) Close() {
	db.db.Close()
}

func (db *DB) InitDB() error {
	stmts := []string{
		`create table if not exists operations(
			id integer not null primary key autoincrement,
			timestamp datetime default current_timestamp,
			operation_type text not null,
			input_file text,
			output_file text,
			data_size integer,
			encryption_used boolean,
			success boolean,
			error_message text,
			metadata text);`,
		`create table if not exists sessions(
			id integer not null primary key autoincrement,
			session_id text unique not null,
			start_time datetime default current_timestamp,
			end_time datetime,
			total_operations integer default 0,
			platform text);`,
		`create table if not exists file_hashes(
			id integer not null primary key autoincrement,
			file_path text unique not null,
			file_hash text not null,
			quick_hash integer not null,
			computed_at datetime default current_timestamp);`,
		`create index if not exists opTypeIdx on operations(operation_type);`,
		`create index if not exists filePathIdx on file_hashes(file_path);`,
	}
	for _, stmt := range stmts {
		if _, err := db.db.Exec( stmt ); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) LogOperation( op *OperationRecord ) error {
	meta := ""
	if op.Metadata != nil {
		raw, err := json.Marshal( op.Metadata )
		if err == nil {
			meta = string(raw)
		}
	}
	_, err := db.db.Exec(
		`insert into operations(operation_type, input_file, output_file,
			data_size, encryption_used, success, error_message, metadata)
		values(?, ?, ?, ?, ?, ?, ?, ?);`,
		op.Type, op.InputFile, op.OutputFile, op.DataSize,
		op.EncryptionUsed, op.Success, op.ErrorMessage, meta )
	return err
}

// History returns the most recent operations, newest first.
func (db *DB) History( limit int ) ([]OperationRecord, error) {
	rows, err := db.db.Query(
		`select id, timestamp, operation_type, input_file, output_file,
			data_size, encryption_used, success, error_message, metadata
		from operations order by id desc limit ?;`, limit )
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []OperationRecord{}
	for rows.Next() {
		var op OperationRecord
		var meta string
		err = rows.Scan( &op.ID, &op.Timestamp, &op.Type, &op.InputFile,
			&op.OutputFile, &op.DataSize, &op.EncryptionUsed,
			&op.Success, &op.ErrorMessage, &meta )
		if err != nil {
			return nil, err
		}
		if meta != "" {
			json.Unmarshal( []byte(meta), &op.Metadata )
		}
		result = append( result, op )
	}
	return result, rows.Err()
}

func (db *DB) StartSession( platform string ) (string, error) {
	sessionID := uuid.NewString()
	_, err := db.db.Exec(
		`insert into sessions(session_id, platform) values(?, ?);`,
		sessionID, platform )
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (db *DB) EndSession( sessionID string ) error {
	_, err := db.db.Exec(
		`update sessions set
			end_time = current_timestamp,
			total_operations = (select count(*) from operations
				where timestamp >= (select start_time from sessions
					where session_id = ?))
		where session_id = ?;`,
		sessionID, sessionID )
	return err
}

func (db *DB) Stats() (*DBStats, error) {
	stats := &DBStats{}
	row := db.db.QueryRow(
		`select count(*),
			coalesce(sum(case when operation_type = 'embed' then 1 else 0 end), 0),
			coalesce(sum(case when operation_type = 'extract' then 1 else 0 end), 0),
			coalesce(sum(case when success = 0 then 1 else 0 end), 0),
			coalesce(sum(data_size), 0)
		from operations;` )
	err := row.Scan( &stats.TotalOperations, &stats.Embeds,
		&stats.Extracts, &stats.Failures, &stats.TotalBytes )
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordFileHash stores both digests for a file: sha256 for integrity
// checks and a quick fingerprint to skip rehashing unchanged files.
func (db *DB) RecordFileHash( path string ) error {
	hash, err := cryptography.FileHash( path )
	if err != nil {
		return err
	}
	quick, err := cryptography.QuickFileHash( path )
	if err != nil {
		return err
	}
	_, err = db.db.Exec(
		`insert into file_hashes(file_path, file_hash, quick_hash)
			values(?, ?, ?)
		on conflict(file_path) do update set
			file_hash = excluded.file_hash,
			quick_hash = excluded.quick_hash,
			computed_at = current_timestamp;`,
		path, hash, int64(quick) )
	return err
}

// VerifyFileHash reports whether the file still matches the recorded
// digest. the cheap fingerprint is checked first, the full sha256 only
// runs when the fingerprint disagrees.
func (db *DB) VerifyFileHash( path string ) (bool, error) {
	var stored string
	var storedQuick int64
	row := db.db.QueryRow(
		`select file_hash, quick_hash from file_hashes where file_path = ?;`, path )
	if err := row.Scan( &stored, &storedQuick ); err != nil {
		return false, err
	}

	quick, err := cryptography.QuickFileHash( path )
	if err != nil {
		return false, err
	}
	if int64(quick) == storedQuick {
		return true, nil
	}
	hash, err := cryptography.FileHash( path )
	if err != nil {
		return false, err
	}
	return hash == stored, nil
}

func (db *DB) Count() (int, error) {
	rows, err := db.db.Query( `select count(*) from operations;` )
	if err != nil {
		return -1, err
	}
	defer rows.Close()
	for rows.Next() {
		var amount int
		if err = rows.Scan( &amount ); err != nil {
			return -1, err
		}
		return amount, nil
	}
	if err = rows.Err(); err != nil {
		return -1, err
	}
	return 0, nil
}
