package logging

// Standardized field names for structured logging.
// Keeping these in one place makes log output consistent and greppable.
const (
	FieldFile        = "file_path"
	FieldParser      = "parser"
	FieldFormat      = "format"
	FieldCategory    = "category"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldSheet       = "sheet"
	FieldPage        = "page"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldRequestID   = "request_id"
	FieldRemoteAddr  = "remote_addr"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldUploadName  = "upload_name"
	FieldDeposits    = "deposits"
	FieldWithdrawals = "withdrawals"
)
