// Package store defines the persistence contracts of the admin account service:
// administrators, their access tokens and uploaded blobs. Implementations live
// under internal/platform.
package store
