package gag

import "encoding/json"

// stockEntry is a single item as the upstream API reports it. The schema
// is owned by the third-party service; every field is optional and the
// raw message is retained so unexpected shapes can be skipped per entry
// instead of failing the whole payload.
type stockEntry struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// allDataResponse is the /alldata payload: one array of entries per
// category key. Keys outside the known category set are ignored.
type allDataResponse map[string][]json.RawMessage
