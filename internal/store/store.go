package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rlacksdl104/dsmm-chat/internal/core"
)

// ErrNotFound is returned when an update targets a missing document.
var ErrNotFound = errors.New("document not found")

// Document is one record of a collection. Data never contains the id;
// callers get it from the ID field (Decode injects it).
type Document struct {
	ID      string
	OrderTS int64
	Data    map[string]any
}

// Decode unmarshals the document, with its id, into v.
func (d Document) Decode(v any) error {
	merged := make(map[string]any, len(d.Data)+1)
	for key, value := range d.Data {
		merged[key] = value
	}
	merged["id"] = d.ID
	raw, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Filter restricts a query to documents whose field equals value.
type Filter struct {
	Field string
	Value string
}

var fieldNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Create inserts a new document. The store assigns the id and a
// server-side creation timestamp (written into the document as
// createdAt), kept strictly monotonic per collection.
func (st *Store) Create(collection string, fields map[string]any) (string, error) {
	guid, err := core.GenerateGUID(collectionPrefix(collection))
	if err != nil {
		return "", err
	}

	tx, err := st.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var maxTS sql.NullInt64
	row := tx.QueryRow(`SELECT MAX(order_ts) FROM dsmm_documents WHERE collection = ?`, collection)
	if err := row.Scan(&maxTS); err != nil {
		return "", err
	}
	ts := time.Now().UnixMilli()
	if maxTS.Valid && ts <= maxTS.Int64 {
		ts = maxTS.Int64 + 1
	}

	doc := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		doc[key] = value
	}
	doc["createdAt"] = ts

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(`
		INSERT INTO dsmm_documents (collection, guid, data, order_ts)
		VALUES (?, ?, ?, ?)
	`, collection, guid, string(raw), ts)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	st.notifyAll()
	return guid, nil
}

// Update merges partial into an existing document. Keys present in
// partial overwrite; a nil value removes the key.
func (st *Store) Update(collection, id string, partial map[string]any) error {
	tx, err := st.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw string
	row := tx.QueryRow(`SELECT data FROM dsmm_documents WHERE collection = ? AND guid = ?`, collection, id)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return err
	}
	for key, value := range partial {
		if value == nil {
			delete(doc, key)
			continue
		}
		doc[key] = value
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE dsmm_documents SET data = ? WHERE collection = ? AND guid = ?`,
		string(merged), collection, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	st.notifyAll()
	return nil
}

// Delete removes a document. Deleting a missing document is a no-op,
// matching the backend's last-write-wins semantics.
func (st *Store) Delete(collection, id string) error {
	result, err := st.db.Exec(`DELETE FROM dsmm_documents WHERE collection = ? AND guid = ?`, collection, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		st.notifyAll()
	}
	return nil
}

// GetOnce fetches a single document, or nil if it does not exist.
func (st *Store) GetOnce(collection, id string) (*Document, error) {
	row := st.db.QueryRow(`
		SELECT guid, order_ts, data FROM dsmm_documents
		WHERE collection = ? AND guid = ?
	`, collection, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// GetAll returns every document of a collection in creation order.
func (st *Store) GetAll(collection string) ([]Document, error) {
	return st.queryCollection(collection, nil)
}

func (st *Store) queryCollection(collection string, filter *Filter) ([]Document, error) {
	query := `
		SELECT guid, order_ts, data FROM dsmm_documents
		WHERE collection = ?`
	args := []any{collection}
	if filter != nil {
		if !fieldNameRe.MatchString(filter.Field) {
			return nil, fmt.Errorf("invalid filter field %q", filter.Field)
		}
		query += ` AND json_extract(data, '$.` + filter.Field + `') = ?`
		args = append(args, filter.Value)
	}
	query += ` ORDER BY order_ts ASC, seq ASC`

	rows, err := st.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var raw string
	if err := row.Scan(&doc.ID, &doc.OrderTS, &raw); err != nil {
		return Document{}, err
	}
	if err := json.Unmarshal([]byte(raw), &doc.Data); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func collectionPrefix(collection string) string {
	switch collection {
	case "messages":
		return "msg"
	case "rooms":
		return "room"
	case "users":
		return "usr"
	}
	trimmed := strings.TrimSuffix(collection, "s")
	if len(trimmed) > 4 {
		trimmed = trimmed[:4]
	}
	return trimmed
}
