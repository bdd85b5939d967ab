package model

// Envelope is the wire payload sent to the remote API. Data always holds a
// single record; the array keeps the shape batch endpoints expect.
type Envelope struct {
	Collection string   `json:"collection"`
	Data       []Record `json:"data"`
}

// NewEnvelope wraps record for collection.
func NewEnvelope(collection string, record Record) Envelope {
	return Envelope{
		Collection: collection,
		Data:       []Record{record},
	}
}
