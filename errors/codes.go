package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_CONFLICT
	ErrorCode_PRECONDITION_FAILED

	ErrorCode_MEETING_INVALID_DATE
	ErrorCode_MEETING_MISSING_SOURCE_ID
	ErrorCode_MEETING_UNKNOWN_SOURCE

	ErrorCode_LEDGER_VERSION_CONFLICT
	ErrorCode_LEDGER_PERSIST_FAILED

	ErrorCode_CONTACT_INVALID_SCOPE

	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED
	ErrorCode_CACHE_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                 "UNKNOWN",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:               "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:          "ALREADY_EXISTS",
	ErrorCode_CONFLICT:                "CONFLICT",
	ErrorCode_PRECONDITION_FAILED:     "PRECONDITION_FAILED",
	ErrorCode_MEETING_INVALID_DATE:    "MEETING_INVALID_DATE",
	ErrorCode_MEETING_MISSING_SOURCE_ID: "MEETING_MISSING_SOURCE_ID",
	ErrorCode_MEETING_UNKNOWN_SOURCE:  "MEETING_UNKNOWN_SOURCE",
	ErrorCode_LEDGER_VERSION_CONFLICT: "LEDGER_VERSION_CONFLICT",
	ErrorCode_LEDGER_PERSIST_FAILED:   "LEDGER_PERSIST_FAILED",
	ErrorCode_CONTACT_INVALID_SCOPE:   "CONTACT_INVALID_SCOPE",
	ErrorCode_DB_QUERY_FAILED:         "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:   "DB_TRANSACTION_FAILED",
	ErrorCode_CACHE_FAILED:            "CACHE_FAILED",
}

// String returns the stable name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
