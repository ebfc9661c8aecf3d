// Package models contains data structures for the application's domain models.
package models

import "go.mongodb.org/mongo-driver/v2/bson"

// NewID returns a fresh 24-character hex object identifier. Every store uses
// this shape so identifiers stay portable between the document and SQL backends.
func NewID() string {
	return bson.NewObjectID().Hex()
}

// IsValidID reports whether s is a well-formed object identifier.
func IsValidID(s string) bool {
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}
