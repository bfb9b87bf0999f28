// Package domain contains the core entities of the admin account service:
// the Administrator, its access tokens and uploaded photos. It is independent
// of any storage or transport concerns.
package domain
