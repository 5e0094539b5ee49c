package model

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrNotText = errors.New("bson value is not a string")

// BSONText returns the string carried by a raw BSON value so enum types can
// validate documents the same way they validate rows. Null reads as empty.
func BSONText(typ byte, data []byte) ([]byte, error) {
	raw := bson.RawValue{Type: bson.Type(typ), Value: data}

	switch raw.Type {
	case bson.TypeNull, bson.TypeUndefined:
		return nil, nil
	}

	text, ok := raw.StringValueOK()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotText, raw.Type)
	}

	return []byte(text), nil
}
