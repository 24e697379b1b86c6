package repository

// ConnectionError reports a configuration or environment problem found
// while opening a session: a missing repository reference, or a base
// directory that cannot be created or read. Fatal to the session.
type ConnectionError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NotFoundError reports that a requested resource or directory is absent,
// or exists but is of the wrong kind. Callers may treat it as recoverable.
type NotFoundError struct {
	Path string
	Msg  string
}

func (e *NotFoundError) Error() string { return e.Msg }

// TransferError reports an I/O failure during a read, write, or copy, or
// a missing base-directory precondition on a per-operation call. Path
// names the offending location where one exists.
type TransferError struct {
	Path string
	Msg  string
	Err  error
}

func (e *TransferError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *TransferError) Unwrap() error { return e.Err }
