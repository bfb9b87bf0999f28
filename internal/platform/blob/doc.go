// Package blob implements store.BlobStore for uploaded photos, either on a
// local filesystem through afero or in an S3 compatible bucket.
package blob
