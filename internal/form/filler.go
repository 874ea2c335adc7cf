// Package form writes field values into the requisition PDF template.
package form

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/unidoc/unipdf/v3/annotator"
	"github.com/unidoc/unipdf/v3/core"
	pdf "github.com/unidoc/unipdf/v3/model"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/pkg/errors"
)

// Filler produces filled copies of a fixed template document. The template
// itself is never mutated; every fill works on a fresh working copy that is
// removed on all paths.
type Filler struct {
	templatePath string
	outputDir    string
}

func NewFiller(templatePath, outputDir string) *Filler {
	return &Filler{
		templatePath: templatePath,
		outputDir:    outputDir,
	}
}

// Fill writes fields into a copy of the template and saves it under a
// unique name in the output directory, returning the saved path. Map keys
// without a matching form field are skipped; form fields without a value
// keep their template defaults.
func (f *Filler) Fill(fields model.FieldMap) (string, error) {
	workingCopy := filepath.Join(f.outputDir, "requisition_form_copy.pdf")
	if err := copyFile(f.templatePath, workingCopy); err != nil {
		return "", errors.Processing("failed to copy requisition template", err)
	}
	defer func() {
		if err := os.Remove(workingCopy); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", workingCopy).Msg("failed to remove working copy")
		}
	}()

	src, err := os.Open(workingCopy)
	if err != nil {
		return "", errors.Processing("failed to open working copy", err)
	}
	defer src.Close()

	reader, err := pdf.NewPdfReader(src)
	if err != nil {
		return "", errors.Processing("failed to read requisition template", err)
	}
	if reader.AcroForm == nil {
		return "", errors.Processing("requisition template has no fillable form", nil)
	}

	appearance := annotator.FieldAppearance{OnlyIfMissing: true, RegenerateTextFields: true}
	if err := reader.AcroForm.FillWithAppearance(fieldValues(fields), appearance); err != nil {
		return "", errors.Processing("failed to fill form fields", err)
	}

	writer, err := reader.ToWriter(&pdf.ReaderToWriterOpts{})
	if err != nil {
		return "", errors.Processing("failed to prepare filled document", err)
	}

	outputPath := filepath.Join(f.outputDir, outputName())
	if err := writer.WriteToFile(outputPath); err != nil {
		return "", errors.Processing("failed to save filled document", err)
	}
	return outputPath, nil
}

// fieldValues adapts a FieldMap to the form fill value provider.
type fieldValues model.FieldMap

func (v fieldValues) FieldValues() (map[string]core.PdfObject, error) {
	values := make(map[string]core.PdfObject, len(v))
	for name, value := range v {
		values[name] = core.MakeString(value)
	}
	return values, nil
}

// outputName builds a unique file name. The time suffix keeps names
// sortable; the uuid fragment prevents collisions between requests
// completing within the same second.
func outputName() string {
	return fmt.Sprintf("requisition_form_filled_%d_%s.pdf",
		time.Now().Unix(), uuid.NewString()[:8])
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
