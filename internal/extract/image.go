package extract

import "net/http"

var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// imageMIMEType prefers the sniffed type when it names an image, then falls
// back to the extension.
func imageMIMEType(ext string, content []byte) string {
	sniffed := http.DetectContentType(content)
	if len(sniffed) > 6 && sniffed[:6] == "image/" {
		return sniffed
	}
	if t, ok := imageMIMETypes[ext]; ok {
		return t
	}
	return "application/octet-stream"
}
