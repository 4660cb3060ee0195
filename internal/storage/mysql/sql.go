package mysql

const createBlobsSQL = `
CREATE TABLE IF NOT EXISTS kv_blobs (
  k          VARCHAR(64)  NOT NULL,
  v          LONGTEXT     NOT NULL,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (k)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const readBlobSQL = `SELECT v FROM kv_blobs WHERE k = ?`

// Whole-blob replace; the last writer wins.
const upsertBlobSQL = `
INSERT INTO kv_blobs (k, v)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  v          = VALUES(v),
  updated_at = CURRENT_TIMESTAMP
`
