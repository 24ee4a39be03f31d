package mutation

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/validate"
)

// maxFormMemory limita lo que ParseMultipartForm guarda en memoria.
const maxFormMemory = 8 << 20

// Upload es un archivo recibido del navegador, ya leído a memoria.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	data        []byte
}

// File lo convierte en parte multipart para reenviarlo al backend.
func (u *Upload) File(field string) httpclient.File {
	return httpclient.File{
		Field:       field,
		Name:        u.Name,
		ContentType: u.ContentType,
		Reader:      bytes.NewReader(u.data),
	}
}

// ReadUpload lee el archivo del campo dado. Devuelve nil, nil si no vino.
// Rechaza archivos sobre el tope de tamaño antes de leerlos.
func ReadUpload(r *http.Request, field string) (*Upload, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, validate.Errorf("Invalid form submission.")
	}

	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, validate.Errorf("Invalid file upload.")
	}
	defer f.Close()

	if err := validate.ImageSize(hdr.Size); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(f, validate.MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if err := validate.ImageSize(int64(len(data))); err != nil {
		return nil, err
	}

	ct := hdr.Header.Get("Content-Type")
	return &Upload{Name: hdr.Filename, ContentType: ct, Size: int64(len(data)), data: data}, nil
}
