package store

const schemaSQL = `
-- Schemaless documents, one row per record. Consumers impose their own
-- schema by convention on the JSON data column.
CREATE TABLE IF NOT EXISTS dsmm_documents (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,  -- stable tie-break for ordering
  collection TEXT NOT NULL,               -- "messages", "rooms", "users"
  guid TEXT NOT NULL,                     -- e.g. "msg-k29dh3aq"
  data TEXT NOT NULL,                     -- JSON document body
  order_ts INTEGER NOT NULL,              -- server-assigned creation time (ms), monotonic per collection
  UNIQUE (collection, guid)
);

CREATE INDEX IF NOT EXISTS idx_dsmm_documents_order
  ON dsmm_documents(collection, order_ts);
`
