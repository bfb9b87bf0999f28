// Package testdb provides migrated databases for tests.
//
// By default every database is a private in-memory SQLite instance. Setting
// ADMINAPI_TEST_DATABASE_URL runs the same tests against PostgreSQL instead;
// the schema is then reset for each test, so such tests must not run in parallel.
package testdb
