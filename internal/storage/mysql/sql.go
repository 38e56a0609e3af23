package mysql

const createObjectsSQL = `
CREATE TABLE IF NOT EXISTS objects (
  obj_key    VARCHAR(191) NOT NULL PRIMARY KEY,
  class      VARCHAR(64)  NOT NULL,
  id         VARCHAR(128) NOT NULL,
  payload    JSON         NOT NULL,
  updated_at DATETIME(6)  NOT NULL,
  KEY idx_objects_class (class)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const selectObjectsSQL = `SELECT obj_key, payload FROM objects`

const selectKeysSQL = `SELECT obj_key FROM objects`

const upsertObjectsPrefix = "INSERT INTO objects\n  (obj_key, class, id, payload, updated_at)\nVALUES "

const upsertObjectsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  class      = VALUES(class),\n" +
	"  id         = VALUES(id),\n" +
	"  payload    = VALUES(payload),\n" +
	"  updated_at = VALUES(updated_at)\n"

const deleteObjectsPrefix = "DELETE FROM objects WHERE obj_key IN "
