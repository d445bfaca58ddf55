// Package service provides image loading and metadata extraction services.
package service

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrUnsupported is returned for files whose extension is not a known image type.
var ErrUnsupported = errors.New("unsupported image type")

// ImageInfo holds metadata about an image.
type ImageInfo struct {
	Path     string
	Format   string
	Width    int
	Height   int
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// ImageService provides methods for loading and decoding images.
type ImageService struct {
	Extensions map[string]bool // Supported image extensions
}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{
		Extensions: map[string]bool{
			".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
			".bmp": true, ".webp": true,
		},
	}
}

// Supported reports whether path has a decodable image extension.
func (is *ImageService) Supported(path string) bool {
	return is.Extensions[strings.ToLower(filepath.Ext(path))]
}

// GetImageInfo reads an image file and extracts metadata without decoding the full image.
func (is *ImageService) GetImageInfo(path string) (*ImageInfo, error) {
	if !is.Supported(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	// Efficiently get image dimensions without decoding the entire image.
	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	// Reset file pointer to read EXIF data
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seeking file for exif: %w", err)
	}

	exifData, _ := exif.Decode(file) // Ignore error, EXIF might not be present

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file stats: %w", err)
	}

	info := &ImageInfo{
		Path:     path,
		Format:   format,
		Width:    config.Width,
		Height:   config.Height,
		Size:     fileInfo.Size(),
		ModTime:  fileInfo.ModTime(),
		EXIFData: make(map[string]string),
	}

	if exifData != nil {
		if camModel, err := exifData.Get(exif.Model); err == nil {
			info.EXIFData["Camera Model"] = strings.Trim(camModel.String(), `"`)
		}
		if fNum, err := exifData.Get(exif.FNumber); err == nil {
			if numer, denom, err := fNum.Rat2(0); err == nil && denom != 0 {
				info.EXIFData["F-Number"] = fmt.Sprintf("f/%.1f", float64(numer)/float64(denom))
			}
		}
		if expTime, err := exifData.Get(exif.ExposureTime); err == nil {
			if numer, denom, err := expTime.Rat2(0); err == nil {
				info.EXIFData["Exposure Time"] = fmt.Sprintf("%d/%d s", numer, denom)
			}
		}
	}

	return info, nil
}

// Decode loads and decodes the full image at path.
func (is *ImageService) Decode(path string) (image.Image, *ImageInfo, error) {
	info, err := is.GetImageInfo(path)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, info, nil
}

// Lines formats the info for display, one fact per line.
func (info *ImageInfo) Lines() []string {
	lines := []string{
		filepath.Base(info.Path),
		fmt.Sprintf("%s %dx%d, %d KB", strings.ToUpper(info.Format), info.Width, info.Height, info.Size/1024),
	}
	for _, key := range []string{"Camera Model", "F-Number", "Exposure Time"} {
		if v, ok := info.EXIFData[key]; ok {
			lines = append(lines, key+": "+v)
		}
	}
	return lines
}
