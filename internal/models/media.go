// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaType distinguishes images from videos.
type MediaType string

const (
	TypeImage MediaType = "image"
	TypeVideo MediaType = "video"
)

// Valid reports whether the type is one of the two known values.
func (t MediaType) Valid() bool {
	return t == TypeImage || t == TypeVideo
}

// MediaItem is the metadata record for a single uploaded image or video.
// The bytes live in object storage; URL is the content address and is
// unique across all items — it serves as the natural dedup key during
// recovery. StorageKey is the canonical object key recorded at write time
// so listings never have to guess legacy path conventions.
type MediaItem struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Type          MediaType `json:"type"`
	CategoryID    string    `json:"categoryId"`
	SubCategoryID string    `json:"subCategoryId"`
	Tags          []string  `json:"tags"`
	SizeBytes     int64     `json:"size"`
	ContentType   string    `json:"contentType"`
	StorageKey    string    `json:"storageKey,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IsVideo returns true for video items.
func (m *MediaItem) IsVideo() bool {
	return m.Type == TypeVideo
}

// HumanSize returns a human-readable file size string.
func (m *MediaItem) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case m.SizeBytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(m.SizeBytes)/float64(mb))
	case m.SizeBytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(m.SizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", m.SizeBytes)
	}
}

// TypeFromContent infers the media type from a MIME content type,
// falling back to the filename when the content type is absent.
func TypeFromContent(contentType, filename string) MediaType {
	if strings.HasPrefix(contentType, "video/") {
		return TypeVideo
	}
	if strings.HasPrefix(contentType, "image/") {
		return TypeImage
	}
	ext := strings.ToLower(filename)
	for _, v := range []string{".mp4", ".mov", ".webm", ".avi", ".mkv"} {
		if strings.HasSuffix(ext, v) {
			return TypeVideo
		}
	}
	return TypeImage
}
