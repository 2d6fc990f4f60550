package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AddressField is a single key/value pair of a shipping address, kept in arrival order.
type AddressField struct {
	Key   string
	Value string
}

// ShippingAddress is treated as an opaque record. The well-known fields are
// extracted for display while every field is retained for export.
type ShippingAddress struct {
	City          string
	StateOrRegion string
	PostalCode    string
	CountryCode   string

	fields []AddressField
}

// NewShippingAddress builds an address from the four well-known fields.
func NewShippingAddress(city, stateOrRegion, postalCode, countryCode string) ShippingAddress {
	return ShippingAddress{
		City:          city,
		StateOrRegion: stateOrRegion,
		PostalCode:    postalCode,
		CountryCode:   countryCode,
	}
}

// Fields returns all address fields in the order they were received.
func (a ShippingAddress) Fields() []AddressField {
	if len(a.fields) > 0 {
		out := make([]AddressField, len(a.fields))
		copy(out, a.fields)
		return out
	}
	if a.City == "" && a.StateOrRegion == "" && a.PostalCode == "" && a.CountryCode == "" {
		return nil
	}
	return []AddressField{
		{Key: "City", Value: a.City},
		{Key: "StateOrRegion", Value: a.StateOrRegion},
		{Key: "PostalCode", Value: a.PostalCode},
		{Key: "CountryCode", Value: a.CountryCode},
	}
}

// Values returns every field value in order.
func (a ShippingAddress) Values() []string {
	fields := a.Fields()
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = f.Value
	}
	return values
}

// UnmarshalJSON decodes the address object, preserving key order. Any value
// that is not an object decodes as an empty address.
func (a *ShippingAddress) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*a = ShippingAddress{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read shipping address: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("unexpected shipping address token %v", tok)
	}

	var parsed ShippingAddress
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read shipping address key: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read shipping address field %s: %w", key, err)
		}

		value := addressValue(raw)
		parsed.fields = append(parsed.fields, AddressField{Key: key, Value: value})

		switch key {
		case "City":
			parsed.City = value
		case "StateOrRegion":
			parsed.StateOrRegion = value
		case "PostalCode":
			parsed.PostalCode = value
		case "CountryCode":
			parsed.CountryCode = value
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read shipping address: %w", err)
	}

	*a = parsed
	return nil
}

// MarshalJSON encodes the address with its original key order.
func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range a.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// addressValue renders a raw JSON value as display text; null becomes empty.
func addressValue(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}
