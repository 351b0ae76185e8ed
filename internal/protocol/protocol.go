// Package protocol implements the line-delimited wire format exchanged
// between the client and server binaries (spec §6.2): exactly one
// request line, then exactly one response line, per interaction. Both
// directions share one JSON-per-line Codec rather than duplicating the
// read/write loop on each side.
package protocol

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/ignitedb/ignite/pkg/errors"
)

// Request is the tagged union of client requests: exactly one field is
// populated, identified by the JSON key present on the line.
type Request struct {
	Get *GetRequest `json:"Get,omitempty"`
	Set *SetRequest `json:"Set,omitempty"`
	Rm  *RmRequest  `json:"Rm,omitempty"`
}

type GetRequest struct {
	Key string `json:"key"`
}

type SetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type RmRequest struct {
	Key string `json:"key"`
}

// NewGetRequest, NewSetRequest and NewRmRequest build a tagged Request.
func NewGetRequest(key string) Request        { return Request{Get: &GetRequest{Key: key}} }
func NewSetRequest(key, value string) Request { return Request{Set: &SetRequest{Key: key, Value: value}} }
func NewRmRequest(key string) Request         { return Request{Rm: &RmRequest{Key: key}} }

// GetResponse carries either the looked-up value (nil if absent) or an
// error message. Exactly one of Value/Err is meaningful; OK is always
// true on success, distinguishing "no error, value absent" from
// "error".
type GetResponse struct {
	OK    bool    `json:"-"`
	Value *string `json:"Ok,omitempty"`
	Err   *string `json:"Err,omitempty"`
}

// SetResponse and RmResponse are Ok/Err results carrying no payload on
// success.
type SetResponse struct {
	OK  bool    `json:"-"`
	Err *string `json:"Err,omitempty"`
}

type RmResponse struct {
	OK  bool    `json:"-"`
	Err *string `json:"Err,omitempty"`
}

// MarshalJSON encodes GetResponse as {"Ok":<value or null>} on success,
// or {"Err":"<message>"} on failure.
func (r GetResponse) MarshalJSON() ([]byte, error) {
	if !r.OK {
		return json.Marshal(struct {
			Err *string `json:"Err"`
		}{Err: r.Err})
	}
	return json.Marshal(struct {
		Ok *string `json:"Ok"`
	}{Ok: r.Value})
}

// UnmarshalJSON decodes a GetResponse from either tagged shape.
func (r *GetResponse) UnmarshalJSON(data []byte) error {
	var tagged struct {
		Ok  *string `json:"Ok"`
		Err *string `json:"Err"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if tagged.Err != nil {
		r.OK, r.Err = false, tagged.Err
		return nil
	}
	r.OK, r.Value = true, tagged.Ok
	return nil
}

// MarshalJSON encodes SetResponse as the bare string "Ok" on success, or
// {"Err":"<message>"} on failure.
func (r SetResponse) MarshalJSON() ([]byte, error) {
	if !r.OK {
		return json.Marshal(struct {
			Err *string `json:"Err"`
		}{Err: r.Err})
	}
	return json.Marshal("Ok")
}

// UnmarshalJSON decodes a SetResponse from either shape.
func (r *SetResponse) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		r.OK = true
		return nil
	}
	var tagged struct {
		Err *string `json:"Err"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	r.OK, r.Err = false, tagged.Err
	return nil
}

// MarshalJSON / UnmarshalJSON for RmResponse mirror SetResponse.
func (r RmResponse) MarshalJSON() ([]byte, error) {
	if !r.OK {
		return json.Marshal(struct {
			Err *string `json:"Err"`
		}{Err: r.Err})
	}
	return json.Marshal("Ok")
}

func (r *RmResponse) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		r.OK = true
		return nil
	}
	var tagged struct {
		Err *string `json:"Err"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	r.OK, r.Err = false, tagged.Err
	return nil
}

func strPtr(s string) *string { return &s }

// NewGetOK, NewGetErr, NewSetOK, NewSetErr, NewRmOK, NewRmErr construct
// responses. value is nil for a successful Get that found no key.
func NewGetOK(value *string) GetResponse { return GetResponse{OK: true, Value: value} }
func NewGetErr(message string) GetResponse {
	return GetResponse{OK: false, Err: strPtr(message)}
}

func NewSetOK() SetResponse { return SetResponse{OK: true} }
func NewSetErr(message string) SetResponse {
	return SetResponse{OK: false, Err: strPtr(message)}
}

func NewRmOK() RmResponse { return RmResponse{OK: true} }
func NewRmErr(message string) RmResponse {
	return RmResponse{OK: false, Err: strPtr(message)}
}

// Codec reads and writes newline-delimited JSON values over a stream,
// shared by both the client and the server so neither has to reimplement
// the framing independently.
type Codec struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewCodec wraps rw for line-delimited JSON request/response exchange.
func NewCodec(rw io.ReadWriter) *Codec {
	return &Codec{reader: bufio.NewReader(rw), writer: rw}
}

// ReadRequest reads and decodes one request line.
func (c *Codec) ReadRequest() (Request, error) {
	var req Request
	if err := c.readLine(&req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// WriteRequest encodes and writes one request line.
func (c *Codec) WriteRequest(req Request) error {
	return c.writeLine(req)
}

// ReadGetResponse, ReadSetResponse, ReadRmResponse read one response line
// of the matching kind.
func (c *Codec) ReadGetResponse() (GetResponse, error) {
	var resp GetResponse
	err := c.readLine(&resp)
	return resp, err
}

func (c *Codec) ReadSetResponse() (SetResponse, error) {
	var resp SetResponse
	err := c.readLine(&resp)
	return resp, err
}

func (c *Codec) ReadRmResponse() (RmResponse, error) {
	var resp RmResponse
	err := c.readLine(&resp)
	return resp, err
}

// WriteGetResponse, WriteSetResponse, WriteRmResponse write one response
// line.
func (c *Codec) WriteGetResponse(resp GetResponse) error { return c.writeLine(resp) }
func (c *Codec) WriteSetResponse(resp SetResponse) error { return c.writeLine(resp) }
func (c *Codec) WriteRmResponse(resp RmResponse) error   { return c.writeLine(resp) }

func (c *Codec) readLine(v any) error {
	line, err := c.reader.ReadBytes('\n')
	if err != nil && len(line) == 0 {
		if err == io.EOF {
			return err
		}
		return errors.NewIOError(err, "failed to read protocol line")
	}
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	if err := json.Unmarshal(line, v); err != nil {
		return errors.NewSerialisationError(err, "failed to decode protocol line")
	}
	return nil
}

func (c *Codec) writeLine(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.NewSerialisationError(err, "failed to encode protocol line")
	}
	payload = append(payload, '\n')
	if _, err := c.writer.Write(payload); err != nil {
		return errors.NewIOError(err, "failed to write protocol line")
	}
	return nil
}
