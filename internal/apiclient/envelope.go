package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Envelope is the {success, message, data?, error?} wrapper around every response.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	// Error is the server's numeric error code, nil when absent.
	Error *Code `json:"error,omitempty"`

	// StatusCode is the HTTP status the envelope arrived with.
	StatusCode int `json:"-"`
}

// HasData reports whether data is present and not null.
func (e *Envelope) HasData() bool {
	if e == nil {
		return false
	}
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// OK reports whether the server reported success with a 2xx status.
func (e *Envelope) OK() bool {
	return e != nil && e.Success && isSuccessStatus(e.StatusCode)
}

// ErrorCode returns the numeric error code or zero.
func (e *Envelope) ErrorCode() int {
	if e == nil || e.Error == nil {
		return 0
	}
	return int(*e.Error)
}

// Code is a numeric error code. It also accepts a numeric string, and reads
// any other value as zero, so an odd code never hides the message.
type Code int

func (c *Code) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			*c = Code(v)
			return nil
		}
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*c = Code(v)
			return nil
		}
	}
	*c = 0
	return nil
}

// DecodeData decodes the data field into T. An absent or null data field
// yields the zero value of T and found == false, never an error.
func DecodeData[T any](e *Envelope) (v T, found bool, err error) {
	if !e.HasData() {
		return v, false, nil
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return v, false, fmt.Errorf("decode data: %w", err)
	}
	return v, true, nil
}
