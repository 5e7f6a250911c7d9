// Package publish uploads compiled pipeline packages to S3-compatible object
// storage. Output locations are written as s3://<bucket>/<key>; the key's
// extension selects the encoding exactly like a local output path.
package publish
