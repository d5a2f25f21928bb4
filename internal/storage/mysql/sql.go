package mysql

// State lives in a two-row keyed blob table: one JSON document for the
// catalog, one for the reservation map. The booking service is the single
// writer, so whole-document upserts are safe.

const createStateTableSQL = `
CREATE TABLE IF NOT EXISTS state_blobs (
  k          VARCHAR(64) NOT NULL PRIMARY KEY,
  v          MEDIUMBLOB  NOT NULL,
  updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)
`

const upsertStateSQL = `
INSERT INTO state_blobs (k, v)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  v          = VALUES(v),
  updated_at = CURRENT_TIMESTAMP
`

const getStateSQL = `SELECT v FROM state_blobs WHERE k = ?`
