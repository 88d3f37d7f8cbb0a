// Package models contain the types shared by the cipher core and its adapters
package models

import "fmt"

// Image is a raw, row-major, channel-interleaved 8-bit sample buffer
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// NewImage allocates a zeroed image of the given shape
func NewImage(width, height, channels int) Image {
	return Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// Pixels returns the number of pixels per channel
func (img Image) Pixels() int {
	return img.Width * img.Height
}

// Validate checks the shape and the buffer length
func (img Image) Validate() error {
	if img.Channels != 1 && img.Channels != 3 {
		return fmt.Errorf("%w: %d channels (want 1 or 3)", ErrUnsupportedFormat, img.Channels)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: %dx%d image", ErrUnsupportedFormat, img.Width, img.Height)
	}
	if want := img.Width * img.Height * img.Channels; len(img.Pix) != want {
		return fmt.Errorf("%w: buffer has %d samples, %dx%dx%d needs %d",
			ErrDimensionMismatch, len(img.Pix), img.Width, img.Height, img.Channels, want)
	}
	return nil
}

// Clone returns a deep copy of img
func (img Image) Clone() Image {
	pix := make([]byte, len(img.Pix))
	copy(pix, img.Pix)
	img.Pix = pix
	return img
}

// Key holds the cipher parameters parsed from a textual key such as D4P5R3.99
type Key struct {
	DRounds int
	PRounds int
	R       float64
	Seed    float64
}

// Metrics represents the statistical report of a ciphertext
type Metrics struct {
	Entropy        float64   `json:"entropy"`
	ChannelEntropy []float64 `json:"channel_entropy,omitempty"`
	NPCR           float64   `json:"npcr,omitempty"`
	UACI           float64   `json:"uaci,omitempty"`
	// PSNR of the ciphertext against its plaintext, in dB
	PSNR float64 `json:"psnr,omitempty"`
}

// CipherResponse represents the JSON body returned when a cipher request fails
type CipherResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AnalyzeResponse represents the entropy report for an uploaded image
type AnalyzeResponse struct {
	Success        bool      `json:"success"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Channels       int       `json:"channels"`
	Entropy        float64   `json:"entropy"`
	ChannelEntropy []float64 `json:"channel_entropy"`
}

// EncryptForm represents the multipart fields accepted by the encrypt endpoint
type EncryptForm struct {
	Key     string   `form:"key"`
	DRounds *int     `form:"d_rounds" binding:"omitempty,min=1,max=64"`
	PRounds *int     `form:"p_rounds" binding:"omitempty,min=1,max=64"`
	RVal    *float64 `form:"r_val" binding:"omitempty,min=3.57,max=4"`
	Metrics bool     `form:"metrics"`
}

// DecryptForm represents the multipart fields accepted by the decrypt endpoint
type DecryptForm struct {
	Key string `form:"key" binding:"required"`
}

// ImageMetadata represents what the container said about an uploaded image
type ImageMetadata struct {
	Format     string
	MIME       string
	Width      int
	Height     int
	Channels   int
	TotalBytes int
}
