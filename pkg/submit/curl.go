package submit

import (
	"fmt"
	"strings"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

// CurlCommand renders a shell command that sends the same form as Encode.
// Text fields use --form-string so values starting with @ or < stay literal.
// The image is referenced by its source path, falling back to the asset
// name when it was not loaded from disk.
func CurlCommand(endpoint string, d models.Draft) string {
	var sb strings.Builder
	sb.WriteString("curl -X POST ")
	sb.WriteString(shellQuote(endpoint))

	add := func(flag, name, value string) {
		sb.WriteString(" \\\n  ")
		sb.WriteString(flag)
		sb.WriteString(" ")
		sb.WriteString(shellQuote(name + "=" + value))
	}

	add("--form-string", FieldTitle, d.Title)
	add("--form-string", FieldDescription, d.Description)
	add("--form-string", FieldDirections, d.Directions)
	for i, ingredient := range d.Ingredients {
		add("--form-string", IngredientField(i), ingredient)
	}

	if d.Asset != nil {
		path := d.Asset.SourcePath
		if path == "" {
			path = d.Asset.Name
		}
		spec := "@" + path
		if d.Asset.ContentType != "" {
			spec += ";type=" + d.Asset.ContentType
		}
		if d.Asset.Name != "" && d.Asset.Name != path {
			spec += fmt.Sprintf(";filename=%s", d.Asset.Name)
		}
		add("-F", FieldImage, spec)
	}

	return sb.String()
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
