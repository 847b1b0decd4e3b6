package screenshots

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BatchPrefix starts every labeled batch folder name
const BatchPrefix = "deployment-"

// PointerName is the entry in the root that designates the most recent batch
const PointerName = "latest"

const batchTimeLayout = "20060102-150405"

// imageTypes is the extension allow-list, with the MIME type sent to providers
var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
}

// DeploymentBatch is one timestamped set of screenshots selected for analysis
type DeploymentBatch struct {
	ID         string            `json:"batch_id"`
	Dir        string            `json:"dir"`
	CapturedAt time.Time         `json:"captured_at"`
	Sequence   int64             `json:"sequence,omitempty"`
	Legacy     bool              `json:"legacy,omitempty"`
	ImagePaths map[string]string `json:"image_paths"`
}

// Empty reports whether the batch has nothing to analyze
func (b DeploymentBatch) Empty() bool {
	return len(b.ImagePaths) == 0
}

// Timestamp returns the capture time in a human-readable form, or "" when
// the batch name carried none
func (b DeploymentBatch) Timestamp() string {
	if b.CapturedAt.IsZero() {
		return ""
	}
	return b.CapturedAt.Format("2006-01-02 15:04:05")
}

// ParseBatchName reads deployment-<YYYYMMDD>-<HHMMSS>-<epoch>. Malformed
// names return a zero time and ok=false.
func ParseBatchName(name string) (capturedAt time.Time, sequence int64, ok bool) {
	rest, found := strings.CutPrefix(name, BatchPrefix)
	if !found {
		return time.Time{}, 0, false
	}

	parts := strings.Split(rest, "-")
	if len(parts) < 2 {
		return time.Time{}, 0, false
	}

	capturedAt, err := time.Parse(batchTimeLayout, parts[0]+"-"+parts[1])
	if err != nil {
		return time.Time{}, 0, false
	}

	if len(parts) >= 3 {
		if n, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			sequence = n
		}
	}

	return capturedAt, sequence, true
}

// IsImage reports whether the file name carries an allowed image extension
func IsImage(name string) bool {
	_, ok := imageTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MIMEType returns the MIME type for an allowed image path, defaulting to image/png
func MIMEType(path string) string {
	if t, ok := imageTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return "image/png"
}

// ScreenName strips the extension from an image file name
func ScreenName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
