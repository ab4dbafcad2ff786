// Package archive keeps raw feed snapshots in object storage.
//
// Every successful feed fetch can be archived under a date-keyed object
// name, giving an audit trail of exactly what the feed served when a
// reconciliation run made its decisions. The archiver also prunes
// snapshots past the configured retention horizon so the bucket does
// not grow without bound.
package archive
