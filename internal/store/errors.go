package store

import "errors"

var (
	// ErrSchemaNotFound indicates the cached schema file could not be opened.
	ErrSchemaNotFound = errors.New("store: schema not found in cache")
	// ErrSchemaParse indicates the cached schema file is not a well-formed document.
	ErrSchemaParse = errors.New("store: schema parse failed")
	// ErrSchemaExists indicates a download was requested while the cache is already populated.
	ErrSchemaExists = errors.New("store: schema already exists in cache")
	// ErrSchemaFetch indicates the remote retrieval failed.
	ErrSchemaFetch = errors.New("store: schema fetch failed")
	// ErrSchemaWrite indicates the fetched schema could not be persisted.
	ErrSchemaWrite = errors.New("store: schema write failed")
	// ErrSchemaUnavailable indicates both the load and fetch-then-load paths failed.
	ErrSchemaUnavailable = errors.New("store: schema unavailable")
	// ErrDocumentParse indicates a validated source is not a well-formed document.
	ErrDocumentParse = errors.New("store: document parse failed")
)
