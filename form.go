package voyagekit

import (
	"io"
	"strconv"

	"github.com/voyagekit/voyagekit.go/pkg/rest"
)

// Form collects the fields and file attachments of a multipart create or
// update submission.
type Form struct {
	fields map[string]string
	files  []rest.File
}

func NewForm() *Form {
	return &Form{fields: make(map[string]string)}
}

func (f *Form) Set(key, value string) *Form {
	f.fields[key] = value
	return f
}

func (f *Form) SetInt(key string, value int) *Form {
	return f.Set(key, strconv.Itoa(value))
}

// AddFile attaches a file part. content is read once, at submit time.
func (f *Form) AddFile(field, filename string, content io.Reader) *Form {
	f.files = append(f.files, rest.File{Field: field, Name: filename, Content: content})
	return f
}

func (f *Form) encode() (io.Reader, string, error) {
	return rest.EncodeMultipart(f.fields, f.files)
}
