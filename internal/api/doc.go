// Package api handles incoming HTTP requests for the administrator account:
// routing, request decoding and response formatting. It translates HTTP
// concerns into calls on the account service.
package api
