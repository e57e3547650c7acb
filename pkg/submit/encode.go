package submit

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

// Form field names understood by the creation endpoint
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDirections  = "secondary_description"
	FieldImage       = "image"
)

// IngredientField returns the indexed field name for the ingredient at i
func IngredientField(i int) string {
	return fmt.Sprintf("ingredients[%d][name]", i)
}

// Field is one text part of the payload
type Field struct {
	Name  string
	Value string
}

// Payload is an encoded draft, captured at encode time
type Payload struct {
	Title           string
	IngredientCount int
	Fields          []Field
	Image           *models.Asset

	ContentType string
	Body        []byte
}

// Encode turns a draft into a multipart/form-data body. Text fields come
// first in a fixed order; the image part is omitted when there is no asset.
func Encode(d models.Draft) (*Payload, error) {
	fields := []Field{
		{Name: FieldTitle, Value: d.Title},
		{Name: FieldDescription, Value: d.Description},
		{Name: FieldDirections, Value: d.Directions},
	}
	for i, ingredient := range d.Ingredients {
		fields = append(fields, Field{Name: IngredientField(i), Value: ingredient})
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", f.Name, err)
		}
	}

	if d.Asset != nil {
		part, err := w.CreatePart(imageHeader(d.Asset))
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(d.Asset.Data); err != nil {
			return nil, fmt.Errorf("failed to write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &Payload{
		Title:           d.Title,
		IngredientCount: len(d.Ingredients),
		Fields:          fields,
		Image:           d.Asset,
		ContentType:     w.FormDataContentType(),
		Body:            buf.Bytes(),
	}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func imageHeader(a *models.Asset) textproto.MIMEHeader {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldImage, quoteEscaper.Replace(a.Name)))
	h.Set("Content-Type", contentType)
	return h
}
