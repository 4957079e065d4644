// Package storage provides the S3/MinIO client used for catalog backup
// uploads. The Client interface keeps feature code testable; mocks live in
// the mocks subpackage.
package storage
