package transform

import (
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackMime = "application/octet-stream"

// FileInfo is what the image importers record about a legacy picture.
type FileInfo struct {
	OriginalName string
	MimeType     string
	Size         int64
	Found        bool
}

// InspectImage resolves a legacy picture path under root. When the file
// exists its content decides the MIME type; otherwise the extension does
// and the size is 0.
func InspectImage(root, legacyPath string) FileInfo {
	clean := strings.TrimLeft(filepath.ToSlash(strings.TrimSpace(legacyPath)), "/")
	info := FileInfo{OriginalName: path.Base(clean)}

	if root != "" && clean != "" {
		full := filepath.Join(root, filepath.FromSlash(clean))
		if st, err := os.Stat(full); err == nil && !st.IsDir() {
			if m, err := mimetype.DetectFile(full); err == nil {
				info.MimeType = m.String()
				if i := strings.IndexByte(info.MimeType, ';'); i >= 0 {
					info.MimeType = info.MimeType[:i]
				}
			}
			info.Size = st.Size()
			info.Found = true
		}
	}
	if info.MimeType == "" {
		info.MimeType = mimeFromExt(clean)
	}
	return info
}

func mimeFromExt(p string) string {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return fallbackMime
	}
	if m := mimetype.Lookup(extensionMimes[ext]); m != nil {
		return m.String()
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	return fallbackMime
}

var extensionMimes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}
