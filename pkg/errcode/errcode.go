package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBCountRowsError
	DBGORMConnectionError

	// Schema errors
	SchemaCreateError
	SchemaMigrateError

	// Load errors
	LoadSourcesConfigError
	LoadNoSourcesError
	LoadFileOpenError
	LoadHeaderError
	LoadReadError
	LoadUnknownTableError
	LoadMissingColumnError
	LoadCopyError
	LoadTruncateError
	LoadCancelledError

	// Bootstrap errors
	BootstrapJurisdictionError
	BootstrapLookupTypesError
	BootstrapCodeMapsError
	BootstrapSeedError
	BootstrapNotFoundError

	// Migration errors
	MigrateCountError
	MigrateWindowError
	MigrateCancelledError

	// Code map errors
	CodeMapLookupError
)
