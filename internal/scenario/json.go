package scenario

import (
	"bytes"
	"encoding/json"
)

// decodeNumbers decodes data into v keeping JSON numbers as json.Number, so
// integers beyond float64 precision reach the wire and the validator intact.
func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// UnmarshalJSON decodes the body with exact numbers.
func (c *RequestContent) UnmarshalJSON(data []byte) error {
	type plain RequestContent
	p := plain(*c)
	if err := decodeNumbers(data, &p); err != nil {
		return err
	}
	*c = RequestContent(p)
	return nil
}

// UnmarshalJSON decodes the body with exact numbers.
func (c *ResponseContent) UnmarshalJSON(data []byte) error {
	type plain ResponseContent
	p := plain(*c)
	if err := decodeNumbers(data, &p); err != nil {
		return err
	}
	*c = ResponseContent(p)
	return nil
}
