// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Danishprabhu04/image-encrypt/chaos"
	"github.com/Danishprabhu04/image-encrypt/cipher"
	"github.com/Danishprabhu04/image-encrypt/config"
	"github.com/Danishprabhu04/image-encrypt/imageio"
	"github.com/Danishprabhu04/image-encrypt/keys"
	"github.com/Danishprabhu04/image-encrypt/metrics"
	"github.com/Danishprabhu04/image-encrypt/models"
)

// Response headers exposed to browsers through CORS.
const (
	HeaderEncryptionKey = "X-Encryption-Key"
	HeaderEntropy       = "X-Cipher-Entropy"
	HeaderNPCR          = "X-Cipher-NPCR"
	HeaderUACI          = "X-Cipher-UACI"
	HeaderPSNR          = "X-Cipher-PSNR"
)

type CipherHandler struct {
	imageDecoder *imageio.ImageDecoder
	cipher       *cipher.Cipher
	cfg          config.Config
	logger       zerolog.Logger
}

func NewCipherHandler(cfg config.Config, logger zerolog.Logger) *CipherHandler {
	return &CipherHandler{
		imageDecoder: imageio.NewImageDecoder(),
		cipher:       cipher.New(cipher.WithLogger(logger), cipher.WithParallel(cfg.Parallel)),
		cfg:          cfg,
		logger:       logger,
	}
}

func (h *CipherHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Image cipher API is running",
		"version": "1.0.0",
	})
}

func (h *CipherHandler) Encrypt(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	var form models.EncryptForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid form: %v", err))
		return
	}

	key, err := h.resolveKey(form)
	if err != nil {
		h.fail(c, statusFor(err), fmt.Sprintf("Invalid key: %v", err))
		return
	}
	if !chaos.IsChaotic(key.R) {
		h.logger.Warn().Float64("r", key.R).Msg("coefficient lies in a periodic window")
	}

	data, filename, ok := h.readUpload(c)
	if !ok {
		return
	}
	img, meta, err := h.imageDecoder.DecodeImage(data)
	if err != nil {
		h.fail(c, statusFor(err), fmt.Sprintf("Failed to decode image: %v", err))
		return
	}

	enc, m, err := h.cipher.EncryptWithMetrics(img, key, form.Metrics)
	if err != nil {
		h.fail(c, statusFor(err), fmt.Sprintf("Failed to encrypt image: %v", err))
		return
	}
	out, err := h.imageDecoder.EncodePNG(enc)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	h.logger.Info().
		Str("format", meta.Format).
		Int("width", meta.Width).
		Int("height", meta.Height).
		Int("channels", meta.Channels).
		Bool("metrics", m != nil).
		Msg("image encrypted")

	c.Header(HeaderEncryptionKey, keys.Format(key))
	if m != nil {
		c.Header(HeaderEntropy, formatFloat(m.Entropy))
		c.Header(HeaderNPCR, formatFloat(m.NPCR))
		c.Header(HeaderUACI, formatFloat(m.UACI))
		c.Header(HeaderPSNR, formatFloat(m.PSNR))
	}
	h.sendPNG(c, "encrypted", filename, out)
}

func (h *CipherHandler) Decrypt(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	var form models.DecryptForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, http.StatusBadRequest, "Key is required")
		return
	}
	key, err := keys.Parse(form.Key)
	if err != nil {
		h.fail(c, statusFor(err), fmt.Sprintf("Invalid key: %v", err))
		return
	}

	data, filename, ok := h.readUpload(c)
	if !ok {
		return
	}
	img, _, err := h.imageDecoder.DecodePNG(data)
	if err != nil {
		h.fail(c, statusFor(err), fmt.Sprintf("Failed to decode image: %v", err))
		return
	}

	dec, err := h.cipher.Decrypt(img, key)
	if err != nil {
		h.fail(c, statusFor(err), fmt.Sprintf("Failed to decrypt image: %v", err))
		return
	}
	out, err := h.imageDecoder.EncodePNG(dec)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	h.logger.Info().Int("width", dec.Width).Int("height", dec.Height).Msg("image decrypted")
	h.sendPNG(c, "decrypted", filename, out)
}

func (h *CipherHandler) Analyze(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}
	data, _, ok := h.readUpload(c)
	if !ok {
		return
	}
	img, _, err := h.imageDecoder.DecodeImage(data)
	if err != nil {
		h.fail(c, statusFor(err), fmt.Sprintf("Failed to decode image: %v", err))
		return
	}

	m := metrics.Analyze(img)
	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Success:        true,
		Width:          img.Width,
		Height:         img.Height,
		Channels:       img.Channels,
		Entropy:        m.Entropy,
		ChannelEntropy: m.ChannelEntropy,
	})
}

// resolveKey prefers an explicit key. Otherwise it builds one from the round
// fields, falling back to the configured defaults.
func (h *CipherHandler) resolveKey(form models.EncryptForm) (models.Key, error) {
	if form.Key != "" {
		return keys.Parse(form.Key)
	}

	d, p, r := h.cfg.DefaultDRounds, h.cfg.DefaultPRounds, h.cfg.DefaultR
	if form.DRounds != nil {
		d = *form.DRounds
	}
	if form.PRounds != nil {
		p = *form.PRounds
	}
	if form.RVal != nil {
		r = *form.RVal
	}
	if h.cfg.RandomSeed {
		return keys.NewRandom(d, p, r)
	}
	return keys.New(d, p, r)
}

func (h *CipherHandler) parseForm(c *gin.Context) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
			return false
		}
		h.fail(c, http.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
		return false
	}
	return true
}

func (h *CipherHandler) readUpload(c *gin.Context) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Image file is required")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, fmt.Sprintf("Failed to read image file: %v", err))
		return nil, "", false
	}
	return data, header.Filename, true
}

func (h *CipherHandler) sendPNG(c *gin.Context, prefix, filename string, data []byte) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem == "" || stem == "." {
		stem = "image"
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s.png", prefix, stem))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	c.Data(http.StatusOK, "image/png", data)
}

func (h *CipherHandler) fail(c *gin.Context, status int, message string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error().Int("status", status).Msg(message)
	} else {
		h.logger.Debug().Int("status", status).Msg(message)
	}
	c.JSON(status, models.CipherResponse{
		Success: false,
		Message: message,
	})
}

// statusFor maps cipher errors to client errors; anything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidKey),
		errors.Is(err, models.ErrUnsupportedFormat),
		errors.Is(err, models.ErrDimensionMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
