package models

// Result is the outcome of parsing a team export: either Data or Error is set, never both.
type Result struct {
	Success bool   `json:"success"`
	Data    *Team  `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	err error
}

func Ok(team *Team) Result {
	return Result{Success: true, Data: team}
}

func Fail(err error) Result {
	if err == nil {
		panic("models: Fail called with nil error")
	}
	return Result{Error: err.Error(), err: err}
}

// Err returns the underlying error of a failed result, for errors.Is / errors.As.
// Results decoded from JSON carry only the message.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return resultError(r.Error)
}

type resultError string

func (e resultError) Error() string { return string(e) }
