package store

import (
	"github.com/jmoiron/sqlx"
)

// DBTX is the query surface shared by *sqlx.DB and *sqlx.Tx, so a store can
// run on a connection or inside a transaction.
type DBTX interface {
	sqlx.ExtContext
}
