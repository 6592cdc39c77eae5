// Package feed normalizes the external account feed into media descriptors.
//
// The feed is an untrusted, partially-undocumented JSON payload mixing
// single-image, carousel and video items. Parse tolerates empty and null
// bodies; it fails only when a decoded payload lacks the top-level data list.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"

	domerrors "github.com/semjuel/instagram/internal/domain/errors"
)

// Kind tags a descriptor as image or video.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Media is a single normalized descriptor. URL is empty for videos; the
// external API exposes no playable URL for them in this integration.
type Media struct {
	Kind Kind   `json:"kind"`
	URL  string `json:"url,omitempty"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// entry is the media shape shared by top-level items and carousel sub-entries.
type entry struct {
	Type   string          `json:"type"`
	Images *images         `json:"images"`
	Videos json.RawMessage `json:"videos"`
}

type item struct {
	entry
	ID            string  `json:"id"`
	CarouselMedia []entry `json:"carousel_media"`
}

type images struct {
	StandardResolution *imageVersion `json:"standard_resolution"`
}

type imageVersion struct {
	URL string `json:"url"`
}

var nullLiteral = []byte("null")

// Parse maps external item ids to ordered descriptor sequences. An empty or
// null body yields an empty map; a decoded payload without a "data" field
// yields ErrMalformedFeed. Entries that are neither videos nor carry a
// standard-resolution image URL are skipped, never aborting the whole parse.
func Parse(body []byte) (map[string][]Media, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		return map[string][]Media{}, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrMalformedFeed, err)
	}
	if env.Data == nil {
		return nil, domerrors.ErrMalformedFeed
	}

	var items []item
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrMalformedFeed, err)
	}

	out := make(map[string][]Media, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if len(it.CarouselMedia) > 0 {
			seq := make([]Media, 0, len(it.CarouselMedia))
			for _, sub := range it.CarouselMedia {
				if m, ok := classify(sub); ok {
					seq = append(seq, m)
				}
			}
			out[it.ID] = seq
			continue
		}
		if m, ok := classify(it.entry); ok {
			out[it.ID] = []Media{m}
		}
	}
	return out, nil
}

// classify applies the single-entry rule: a declared video type wins; an
// entry without image data but with video data is a video (some feed items
// omit the type tag); otherwise the standard-resolution URL makes an image.
func classify(e entry) (Media, bool) {
	if e.Type == "video" {
		return Media{Kind: KindVideo}, true
	}
	if e.Images == nil && jsonPresent(e.Videos) {
		return Media{Kind: KindVideo}, true
	}
	if e.Images != nil && e.Images.StandardResolution != nil && e.Images.StandardResolution.URL != "" {
		return Media{Kind: KindImage, URL: e.Images.StandardResolution.URL}, true
	}
	return Media{}, false
}

func jsonPresent(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	return !bytes.Equal(bytes.TrimSpace(raw), nullLiteral)
}
