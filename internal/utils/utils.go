package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nanoIdAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func Now() time.Time {
	return time.Now().UTC()
}

func NowPtr() *time.Time {
	now := Now()
	return &now
}

func GenerateNanoIdWithPrefix(prefix string, length int) string {
	id, err := gonanoid.Generate(nanoIdAlphabet, length)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}

// StringPtr returns a pointer to the given string, nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
