package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"strconv"
)

// avatarPixels is the avatar edge in source pixels. Braille packs 2x4
// pixels per cell, so this is 24 columns by 12 rows.
const avatarPixels = 48

// fetchAvatar downloads an avatar and scales it to fit size pixels.
func fetchAvatar(ctx context.Context, client *http.Client, avatarURL string, size int) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sizedAvatarURL(avatarURL, size), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch avatar: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch avatar: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar: %w", err)
	}

	return scaleImage(img, size), nil
}

// sizedAvatarURL asks GitHub's avatar CDN for a small rendition.
func sizedAvatarURL(raw string, size int) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("s", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return u.String()
}

// scaleImage fits img within maxSize keeping the aspect ratio, using
// nearest-neighbour sampling.
func scaleImage(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width <= maxSize && height <= maxSize {
		return img
	}

	newWidth, newHeight := maxSize, maxSize
	if width > height {
		newHeight = max(height*maxSize/width, 1)
	} else {
		newWidth = max(width*maxSize/height, 1)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	for y := 0; y < newHeight; y++ {
		for x := 0; x < newWidth; x++ {
			srcX := bounds.Min.X + x*width/newWidth
			srcY := bounds.Min.Y + y*height/newHeight
			scaled.Set(x, y, img.At(srcX, srcY))
		}
	}

	return scaled
}
