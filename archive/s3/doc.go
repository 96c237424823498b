// Package s3 publishes bundles to Amazon S3 and tracks published versions
// in DynamoDB.
//
// The sink streams each bundle through a managed multipart upload while
// it is packed, so bundles never touch local disk. The catalog serializes
// version commits with a conditional put; racing publishers get
// ErrConcurrentModification and may retry.
package s3
