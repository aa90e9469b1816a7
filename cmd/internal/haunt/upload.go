package haunt

import "net/http"

// maxUploadBytes bounds multipart request memory for /detect uploads.
const maxUploadBytes = 10 << 20

// hasImage reports whether the request carries a multipart file in the
// "image" field. The file content is discarded; routes only care that an
// image was supplied.
func hasImage(r *http.Request) bool {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return false
	}
	f, _, err := r.FormFile("image")
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
