package service

import (
	"fmt"
	"hash/fnv"
)

// ColorOf derives a stable display color from a post's public id.
// The low 24 bits of an FNV-1a hash are split into RGB channels:
// red is bits 0-7, green 8-15, blue 16-23.
func ColorOf(publicId string) string {
	h := fnv.New64a()
	h.Write([]byte(publicId))
	sum := h.Sum64()

	r := uint8(sum)
	g := uint8(sum >> 8)
	b := uint8(sum >> 16)

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
